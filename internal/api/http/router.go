package http

import (
	"time"

	"sleepy-game/internal/api/ws"
	"sleepy-game/internal/config"
	"sleepy-game/internal/room"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func SetupRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) (*gin.Engine, error) {
	ch, err := NewConfigHandler(rm.Rules(), cfg)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", HealthHandler)
	r.GET("/ws", hub.HandleWS)

	// --- CONFIG ENDPOINTS ---
	r.GET("/catalog", ch.GetCatalogHandler)
	r.GET("/config/rules", ch.GetRulesHandler)

	// --- ROOM ENDPOINTS ---
	rooms := r.Group("/rooms")
	rooms.GET("", ListRoomsHandler(rm))
	rooms.POST("", CreateRoomHandler(rm))
	rooms.POST("/:id/join", JoinRoomHandler(rm))

	// --- GAME ENDPOINTS ---
	rooms.POST("/:id/actions", SubmitActionHandler(rm))
	rooms.GET("/:id/state", StateHandler(rm))

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", seatTokenHeader},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
