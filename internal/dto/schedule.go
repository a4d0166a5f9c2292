package dto

import "github.com/Samu-Kiss/Uni-App/internal/model"

// ── schedule DTOs ──

// GenerateScheduleRequest tunes a generation run. Nil toggles fall back
// to the user's stored configuration.
type GenerateScheduleRequest struct {
	EvitarMadrugada *bool `json:"evitar_madrugada"`
	EvitarNoche     *bool `json:"evitar_noche"`
}

// CombinacionResponse is one conflict-free schedule candidate.
type CombinacionResponse struct {
	Clases  []model.ClaseSnapshot `json:"clases"`
	Puntaje int                   `json:"puntaje"`
}

// GenerateScheduleResponse is the ranked result of a generation run.
type GenerateScheduleResponse struct {
	Combinaciones  []CombinacionResponse `json:"combinaciones"`
	Total          int                   `json:"total"`
	TotalPosibles  int                   `json:"total_posibles"`
	TotalEvaluadas int                   `json:"total_evaluadas"`
	Truncado       bool                  `json:"truncado"`
	Advertencia    string                `json:"advertencia,omitempty"`
}

// SelectScheduleRequest persists one combination by its section IDs.
type SelectScheduleRequest struct {
	ClaseIDs []string `json:"clase_ids" binding:"required,min=1,dive,uuid"`
}

// ConflictoResponse is one pairwise overlap between two sections.
type ConflictoResponse struct {
	ClaseA  model.ClaseSnapshot `json:"clase_a"`
	ClaseB  model.ClaseSnapshot `json:"clase_b"`
	Dia     int                 `json:"dia"`
	DiaName string              `json:"dia_nombre"`
}

// GridCell is one block placed on the weekly grid.
type GridCell struct {
	MateriaCodigo string `json:"materia_codigo"`
	MateriaNombre string `json:"materia_nombre"`
	NRC           string `json:"nrc"`
	Profesor      string `json:"profesor"`
	HoraInicio    string `json:"hora_inicio"`
	HoraFin       string `json:"hora_fin"`
}

// GridMetrics summarizes the quality of the laid-out schedule.
type GridMetrics struct {
	DiasLibres    int    `json:"dias_libres"`
	Huecos        int    `json:"huecos"`
	HuecosMinutos int    `json:"huecos_minutos"`
	PrimeraClase  string `json:"primera_clase"`
	UltimaClase   string `json:"ultima_clase"`
}

// GridResponse lays the active schedule out by day for rendering.
type GridResponse struct {
	Dias     map[int][]GridCell `json:"dias"`
	Metricas GridMetrics        `json:"metricas"`
}
