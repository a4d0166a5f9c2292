package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// FranjaHandler serves the time-slot preference endpoints.
type FranjaHandler struct {
	franjaSvc service.FranjaService
}

// NewFranjaHandler creates a FranjaHandler.
func NewFranjaHandler(franjaSvc service.FranjaService) *FranjaHandler {
	return &FranjaHandler{franjaSvc: franjaSvc}
}

// CreateFranja registers a blocked or preferred slot.
// POST /api/v1/franjas
func (h *FranjaHandler) CreateFranja(c *gin.Context) {
	var req dto.CreateFranjaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	franja, err := h.franjaSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleFranjaError(c, err)
		return
	}
	response.Created(c, franja)
}

// ListFranjas lists slots, optionally by type.
// GET /api/v1/franjas?tipo=blocked
func (h *FranjaHandler) ListFranjas(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	franjas, err := h.franjaSvc.List(c.Request.Context(), userID, c.Query("tipo"))
	if err != nil {
		h.handleFranjaError(c, err)
		return
	}
	response.OK(c, gin.H{"list": franjas})
}

// UpdateFranja edits a slot.
// PUT /api/v1/franjas/:id
func (h *FranjaHandler) UpdateFranja(c *gin.Context) {
	var req dto.UpdateFranjaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	franja, err := h.franjaSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleFranjaError(c, err)
		return
	}
	response.OK(c, franja)
}

// DeleteFranja removes a slot.
// DELETE /api/v1/franjas/:id
func (h *FranjaHandler) DeleteFranja(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.franjaSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleFranjaError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *FranjaHandler) handleFranjaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFranjaNotFound):
		response.NotFound(c, 13001, "franja not found")
	case errors.Is(err, service.ErrFranjaInvalida):
		response.BadRequest(c, 13002, "invalid franja slot")
	default:
		response.InternalError(c)
	}
}
