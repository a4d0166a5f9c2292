package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Samu-Kiss/Uni-App/internal/service"
	"github.com/Samu-Kiss/Uni-App/pkg/response"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves the schedule export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportICS downloads the active schedule as an iCalendar file. When
// inicio and fin are given the weekly events start at inicio and stop
// recurring at fin.
// GET /api/v1/export/ics?inicio=2026-01-19&fin=2026-05-22
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	inicio, okInicio := parseFecha(c.Query("inicio"))
	fin, okFin := parseFecha(c.Query("fin"))
	if !okInicio || !okFin || (inicio == nil) != (fin == nil) {
		response.BadRequest(c, 16002, "inicio and fin must both be YYYY-MM-DD dates")
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), userID, inicio, fin)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

// parseFecha parses an optional YYYY-MM-DD query value.
func parseFecha(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// ExportExcel downloads the active schedule as a spreadsheet.
// GET /api/v1/export/xlsx
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSchedule):
		response.NotFound(c, 16001, "no active schedule to export")
	case errors.Is(err, service.ErrFechasInvalidas):
		response.BadRequest(c, 16002, "semester dates out of range")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
