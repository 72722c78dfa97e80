package http

import (
	"net/http"

	"sleepy-game/internal/config"
	"sleepy-game/internal/game"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	rules   game.Rules
	cfg     config.Config
	catalog *game.Catalog
}

func NewConfigHandler(rules game.Rules, cfg config.Config) (*ConfigHandler, error) {
	cat, err := game.NewCatalog(rules.Variant)
	if err != nil {
		return nil, err
	}
	rules.Variant = cat.Variant()
	return &ConfigHandler{rules: rules, cfg: cfg, catalog: cat}, nil
}

// GetRulesHandler returns the rules new rooms are created with
// @Summary Get table rules
// @Tags Config
// @Produce json
// @Success 200 {object} RulesResponse
// @Router /config/rules [get]
func (h *ConfigHandler) GetRulesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RulesResponse{
		Rules:            h.rules,
		DisconnectPolicy: string(h.cfg.DisconnectPolicy),
		LogTail:          h.cfg.LogTail,
	})
}

// GetCatalogHandler lists the card templates in the active catalog
// @Summary Get card catalog
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /catalog [get]
func (h *ConfigHandler) GetCatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"variant": h.catalog.Variant(),
		"cards":   h.catalog.Templates(),
	})
}
