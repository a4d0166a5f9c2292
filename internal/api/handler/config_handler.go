package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// ConfigHandler serves the user preference endpoints.
type ConfigHandler struct {
	configSvc service.ConfigService
}

// NewConfigHandler creates a ConfigHandler.
func NewConfigHandler(configSvc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configSvc: configSvc}
}

// Get returns the user's preferences.
// GET /api/v1/configuracion
func (h *ConfigHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.configSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, cfg)
}

// Update edits the user's preferences.
// PUT /api/v1/configuracion
func (h *ConfigHandler) Update(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.configSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, cfg)
}
