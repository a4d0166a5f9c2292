package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// GPAHandler serves the grade endpoints.
type GPAHandler struct {
	gpaSvc service.GPAService
}

// NewGPAHandler creates a GPAHandler.
func NewGPAHandler(gpaSvc service.GPAService) *GPAHandler {
	return &GPAHandler{gpaSvc: gpaSvc}
}

// CreateCalificacion adds a grade item.
// POST /api/v1/calificaciones
func (h *GPAHandler) CreateCalificacion(c *gin.Context) {
	var req dto.CreateCalificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	calificacion, err := h.gpaSvc.CreateCalificacion(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.Created(c, calificacion)
}

// ListCalificaciones lists the grade items of one materia.
// GET /api/v1/materias/:id/calificaciones
func (h *GPAHandler) ListCalificaciones(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	calificaciones, err := h.gpaSvc.ListCalificaciones(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, gin.H{"list": calificaciones})
}

// UpdateCalificacion edits a grade item.
// PUT /api/v1/calificaciones/:id
func (h *GPAHandler) UpdateCalificacion(c *gin.Context) {
	var req dto.UpdateCalificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	calificacion, err := h.gpaSvc.UpdateCalificacion(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, calificacion)
}

// DeleteCalificacion removes a grade item.
// DELETE /api/v1/calificaciones/:id
func (h *GPAHandler) DeleteCalificacion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.gpaSvc.DeleteCalificacion(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, nil)
}

// MateriaGrade returns the current weighted grade of one materia.
// GET /api/v1/materias/:id/nota
func (h *GPAHandler) MateriaGrade(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grade, err := h.gpaSvc.MateriaGrade(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, grade)
}

// GPA returns the cumulative average with a semester breakdown.
// GET /api/v1/gpa
func (h *GPAHandler) GPA(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	gpa, err := h.gpaSvc.GPA(c.Request.Context(), userID)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, gpa)
}

// Simulate projects the GPA with hypothetical grades.
// POST /api/v1/gpa/simular
func (h *GPAHandler) Simulate(c *gin.Context) {
	var req dto.SimulateGPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.gpaSvc.Simulate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, result)
}

// NeededGrade answers what the remaining percentage requires.
// GET /api/v1/materias/:id/nota-necesaria
func (h *GPAHandler) NeededGrade(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.gpaSvc.NeededGrade(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, result)
}

// Alerts flags materias below the minimum passing grade.
// GET /api/v1/gpa/alertas
func (h *GPAHandler) Alerts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	alertas, err := h.gpaSvc.Alerts(c.Request.Context(), userID)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, gin.H{"list": alertas})
}

// AcademicProgress summarizes GPA, credit progress, estado counts, and trend.
// GET /api/v1/gpa/progreso
func (h *GPAHandler) AcademicProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	progreso, err := h.gpaSvc.AcademicProgress(c.Request.Context(), userID)
	if err != nil {
		h.handleGPAError(c, err)
		return
	}
	response.OK(c, progreso)
}

func (h *GPAHandler) handleGPAError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalificacionNotFound):
		response.NotFound(c, 15001, "calificacion not found")
	case errors.Is(err, service.ErrMateriaNotFound):
		response.NotFound(c, 15002, "materia not found")
	case errors.Is(err, service.ErrPorcentajeExcedido):
		response.BadRequest(c, 15003, "grade item percentages exceed 100")
	case errors.Is(err, service.ErrSinCalificaciones):
		response.NotFound(c, 15004, "materia has no graded items")
	default:
		response.InternalError(c)
	}
}
