package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type DisconnectPolicy string

const (
	DisconnectForfeit DisconnectPolicy = "forfeit"
	DisconnectPause   DisconnectPolicy = "pause"
)

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string

	MaxHandSize       int
	CharactersPerSeat int
	CardCatalog       string

	DisconnectPolicy DisconnectPolicy
	FinishedRoomTTL  time.Duration
	PausedRoomTTL    time.Duration
	LogTail          int
	BotActionLimit   int

	WSRatePerSec float64
	WSBurst      int

	LogLevel  string
	LogPretty bool
	RNGSeed   int64
}

func getenvString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()

	policy := DisconnectPolicy(strings.ToLower(getenvString("DISCONNECT_POLICY", string(DisconnectForfeit))))
	if policy != DisconnectPause {
		policy = DisconnectForfeit
	}

	var origins []string
	for _, o := range strings.Split(getenvString("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		HTTPAddr:          getenvString("HTTP_ADDR", ":8080"),
		AllowedOrigins:    origins,
		MaxHandSize:       getenvInt("MAX_HAND_SIZE", 5),
		CharactersPerSeat: getenvInt("CHARACTERS_PER_SEAT", 3),
		CardCatalog:       getenvString("CARD_CATALOG", "standard"),
		DisconnectPolicy:  policy,
		FinishedRoomTTL:   getenvDuration("FINISHED_ROOM_TTL", 60*time.Second),
		PausedRoomTTL:     getenvDuration("PAUSED_ROOM_TTL", 10*time.Minute),
		LogTail:           getenvInt("LOG_TAIL", 20),
		BotActionLimit:    getenvInt("BOT_ACTION_LIMIT", 64),
		WSRatePerSec:      getenvFloat("WS_RATE_PER_SEC", 5),
		WSBurst:           getenvInt("WS_BURST", 10),
		LogLevel:          getenvString("LOG_LEVEL", "info"),
		LogPretty:         getenvBool("LOG_PRETTY", true),
		RNGSeed:           int64(getenvInt("RNG_SEED", 0)),
	}
}

var (
	once    sync.Once
	current Config
)

// Get returns the process configuration, loading it on first use.
func Get() *Config {
	once.Do(func() { current = Load() })
	return &current
}
