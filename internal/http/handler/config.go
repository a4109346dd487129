package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

// ConfigHandler tells the client which optional features are switched on.
type ConfigHandler struct {
	resp dto.ConfigResponse
}

func NewConfigHandler(providers service.Providers, integrations []model.Provider, searchEnabled bool) *ConfigHandler {
	names := make([]string, len(integrations))
	for i, p := range integrations {
		names[i] = string(p)
	}
	return &ConfigHandler{resp: dto.ConfigResponse{
		HasGitHubSignIn:     providers.GitHub,
		HasSSO:              providers.SSO,
		DisableRegistration: providers.DisableRegistration,
		Integrations:        names,
		SearchEnabled:       searchEnabled,
	}}
}

func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.resp)
}
