package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// ScheduleHandler serves the schedule generation endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Generate enumerates ranked conflict-free combinations.
// POST /api/v1/horarios/generar
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "invalid request body")
			return
		}
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// Select persists one combination as the active schedule.
// POST /api/v1/horarios/seleccionar
func (h *ScheduleHandler) Select(c *gin.Context) {
	var req dto.SelectScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	horario, err := h.scheduleSvc.Select(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, horario)
}

// GetActive returns the active schedule.
// GET /api/v1/horarios/activo
func (h *ScheduleHandler) GetActive(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	horario, err := h.scheduleSvc.GetActive(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, horario)
}

// List returns every saved schedule, newest first.
// GET /api/v1/horarios
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	horarios, err := h.scheduleSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": horarios})
}

// Delete removes a saved schedule.
// DELETE /api/v1/horarios/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Conflicts lists pairwise overlaps among enrolled sections.
// GET /api/v1/horarios/conflictos
func (h *ScheduleHandler) Conflicts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	conflictos, err := h.scheduleSvc.ListConflicts(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": conflictos})
}

// Grid lays out the active schedule by day.
// GET /api/v1/horarios/grilla
func (h *ScheduleHandler) Grid(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grid, err := h.scheduleSvc.Grid(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, grid)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var missing *service.MissingSectionsError
	var malformed *service.MalformedTimeBlockError

	switch {
	case errors.Is(err, service.ErrNoEnrolledCourses):
		response.BadRequest(c, 14001, "no enrolled materias to schedule")
	case errors.As(err, &missing):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14002,
			"materias without sections", strings.Join(missing.Codigos, ", "))
	case errors.As(err, &malformed):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14003,
			"malformed time block", malformed.Error())
	case errors.Is(err, service.ErrSeleccionConflictiva):
		response.Conflict(c, 14004, "selected sections overlap in time")
	case errors.Is(err, service.ErrSeleccionDuplicada):
		response.BadRequest(c, 14005, "selection repeats a materia")
	case errors.Is(err, service.ErrClaseNotFound):
		response.NotFound(c, 14006, "clase not found")
	case errors.Is(err, service.ErrHorarioNotFound):
		response.NotFound(c, 14007, "saved schedule not found")
	case errors.Is(err, service.ErrNoActiveSchedule):
		response.NotFound(c, 14008, "no active schedule")
	default:
		response.InternalError(c)
	}
}
