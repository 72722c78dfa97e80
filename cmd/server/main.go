package main

import (
	httpapi "sleepy-game/internal/api/http"
	"sleepy-game/internal/api/ws"
	"sleepy-game/internal/config"
	"sleepy-game/internal/logger"
	"sleepy-game/internal/room"
	"sleepy-game/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, *cfg, nil)
	hub := ws.NewHub(rm, *cfg)
	rm.SetHub(hub)

	r, err := httpapi.SetupRouter(rm, hub, *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup router")
	}

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("catalog", cfg.CardCatalog).
		Str("disconnect_policy", string(cfg.DisconnectPolicy)).
		Msg("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
