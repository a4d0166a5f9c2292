package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

// PensumHandler serves the pensum endpoints.
type PensumHandler struct {
	pensumSvc service.PensumService
}

// NewPensumHandler creates a PensumHandler.
func NewPensumHandler(pensumSvc service.PensumService) *PensumHandler {
	return &PensumHandler{pensumSvc: pensumSvc}
}

// CreateMateria adds a course to the pensum.
// POST /api/v1/materias
func (h *PensumHandler) CreateMateria(c *gin.Context) {
	var req dto.CreateMateriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	materia, err := h.pensumSvc.CreateMateria(c.Request.Context(), userID, &req)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.Created(c, materia)
}

// ListMaterias lists the pensum, optionally filtered.
// GET /api/v1/materias?estado=enrolled&semestre=3
func (h *PensumHandler) ListMaterias(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	estado := c.Query("estado")
	var semestre *int
	if raw := c.Query("semestre"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, 10001, "semestre must be a number")
			return
		}
		semestre = &n
	}

	materias, err := h.pensumSvc.ListMaterias(c.Request.Context(), userID, estado, semestre)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, gin.H{"list": materias})
}

// AvailableCourses lists courses the user could take in a semester.
// GET /api/v1/materias/disponibles?semestre=3
func (h *PensumHandler) AvailableCourses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semestre, err := strconv.Atoi(c.Query("semestre"))
	if err != nil || semestre < 1 {
		response.BadRequest(c, 10001, "semestre must be a positive number")
		return
	}

	materias, err := h.pensumSvc.AvailableCourses(c.Request.Context(), userID, semestre)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, gin.H{"list": materias})
}

// RefreshEstados re-derives blocked/pending standings across the pensum.
// POST /api/v1/materias/refrescar-estados
func (h *PensumHandler) RefreshEstados(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	materias, err := h.pensumSvc.RefreshEstados(c.Request.Context(), userID)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, gin.H{"list": materias})
}

// CheckCreditos checks a semester's credit load against the configured maximum.
// GET /api/v1/materias/creditos?semestre=3&agregar=4
func (h *PensumHandler) CheckCreditos(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	semestre, err := strconv.Atoi(c.Query("semestre"))
	if err != nil || semestre < 1 {
		response.BadRequest(c, 10001, "semestre must be a positive number")
		return
	}
	agregar := 0
	if raw := c.Query("agregar"); raw != "" {
		if agregar, err = strconv.Atoi(raw); err != nil || agregar < 0 {
			response.BadRequest(c, 10001, "agregar must be a non-negative number")
			return
		}
	}

	check, err := h.pensumSvc.CheckCreditos(c.Request.Context(), userID, semestre, agregar)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, check)
}

// Validate audits the pensum structure for dangling references, semester
// ordering problems and circular dependencies.
// GET /api/v1/materias/validar
func (h *PensumHandler) Validate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resultado, err := h.pensumSvc.ValidateStructure(c.Request.Context(), userID)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, resultado)
}

// GetMateria returns one course.
// GET /api/v1/materias/:id
func (h *PensumHandler) GetMateria(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	materia, err := h.pensumSvc.GetMateria(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, materia)
}

// UpdateMateria edits a course.
// PUT /api/v1/materias/:id
func (h *PensumHandler) UpdateMateria(c *gin.Context) {
	var req dto.UpdateMateriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	materia, err := h.pensumSvc.UpdateMateria(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, materia)
}

// UpdateEstado transitions a course's standing.
// PATCH /api/v1/materias/:id/estado
func (h *PensumHandler) UpdateEstado(c *gin.Context) {
	var req dto.UpdateEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	materia, err := h.pensumSvc.UpdateEstado(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, materia)
}

// MoveMateria relocates a course to another semester.
// PATCH /api/v1/materias/:id/semestre
func (h *PensumHandler) MoveMateria(c *gin.Context) {
	var req dto.MoveMateriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	materia, err := h.pensumSvc.MoveMateria(c.Request.Context(), userID, c.Param("id"), req.Semestre)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, materia)
}

// DeleteMateria removes a course from the pensum.
// DELETE /api/v1/materias/:id
func (h *PensumHandler) DeleteMateria(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.pensumSvc.DeleteMateria(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, nil)
}

// SimulatePerdida shows the impact of failing a course.
// POST /api/v1/materias/simular-perdida
func (h *PensumHandler) SimulatePerdida(c *gin.Context) {
	var req dto.SimulatePerdidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.pensumSvc.SimulatePerdida(c.Request.Context(), userID, req.Codigo)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, result)
}

// Progress summarizes credit progress.
// GET /api/v1/materias/progreso
func (h *PensumHandler) Progress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	progress, err := h.pensumSvc.Progress(c.Request.Context(), userID)
	if err != nil {
		h.handlePensumError(c, err)
		return
	}
	response.OK(c, progress)
}

func (h *PensumHandler) handlePensumError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMateriaNotFound):
		response.NotFound(c, 11001, "materia not found")
	case errors.Is(err, service.ErrMateriaDuplicada):
		response.Conflict(c, 11002, "a materia with that codigo already exists")
	case errors.Is(err, service.ErrEstadoInvalido):
		response.BadRequest(c, 11003, "invalid estado")
	case errors.Is(err, service.ErrPrerequisitoNoExiste):
		response.BadRequest(c, 11004, "prerequisite codigo not in pensum")
	case errors.Is(err, service.ErrPrerequisitoCiclo):
		response.BadRequest(c, 11005, "prerequisite graph would contain a cycle")
	case errors.Is(err, service.ErrPrerequisitosIncompletos):
		response.Conflict(c, 11006, "prerequisites not satisfied")
	case errors.Is(err, service.ErrMovimientoInvalido):
		response.Conflict(c, 11007, "move would break prerequisite ordering")
	case errors.Is(err, service.ErrTieneDependientes):
		response.Conflict(c, 11008, "other materias list this one as requisito")
	default:
		response.InternalError(c)
	}
}
