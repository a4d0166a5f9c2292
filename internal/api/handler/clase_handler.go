package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// ClaseHandler serves the section endpoints.
type ClaseHandler struct {
	claseSvc service.ClaseService
}

// NewClaseHandler creates a ClaseHandler.
func NewClaseHandler(claseSvc service.ClaseService) *ClaseHandler {
	return &ClaseHandler{claseSvc: claseSvc}
}

// CreateClase registers a section.
// POST /api/v1/clases
func (h *ClaseHandler) CreateClase(c *gin.Context) {
	var req dto.CreateClaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	clase, err := h.claseSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleClaseError(c, err)
		return
	}
	response.Created(c, clase)
}

// GetClase returns one section.
// GET /api/v1/clases/:id
func (h *ClaseHandler) GetClase(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	clase, err := h.claseSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleClaseError(c, err)
		return
	}
	response.OK(c, clase)
}

// ListClases lists the sections of one materia.
// GET /api/v1/materias/:id/clases
func (h *ClaseHandler) ListClases(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	clases, err := h.claseSvc.ListByMateria(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleClaseError(c, err)
		return
	}
	response.OK(c, gin.H{"list": clases})
}

// UpdateClase edits a section.
// PUT /api/v1/clases/:id
func (h *ClaseHandler) UpdateClase(c *gin.Context) {
	var req dto.UpdateClaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	clase, err := h.claseSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleClaseError(c, err)
		return
	}
	response.OK(c, clase)
}

// DeleteClase removes a section.
// DELETE /api/v1/clases/:id
func (h *ClaseHandler) DeleteClase(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.claseSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleClaseError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ClaseHandler) handleClaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClaseNotFound):
		response.NotFound(c, 12001, "clase not found")
	case errors.Is(err, service.ErrMateriaNotFound):
		response.NotFound(c, 12002, "materia not found")
	case errors.Is(err, service.ErrClaseDuplicada):
		response.Conflict(c, 12003, "a clase with that NRC already exists")
	case errors.Is(err, service.ErrBloqueInvalido):
		response.BadRequest(c, 12004, "invalid time block")
	default:
		response.InternalError(c)
	}
}
