package dto

// ── gpa DTOs ──

// CreateCalificacionRequest adds a weighted grade item to a materia.
type CreateCalificacionRequest struct {
	MateriaID  string   `json:"materia_id" binding:"required,uuid"`
	Nombre     string   `json:"nombre"     binding:"required,max=200"`
	Porcentaje float64  `json:"porcentaje" binding:"required,gt=0,lte=100"`
	Nota       *float64 `json:"nota"       binding:"omitempty,gte=0,lte=5"`
}

// UpdateCalificacionRequest edits a grade item. Nil fields are left unchanged.
type UpdateCalificacionRequest struct {
	Nombre     *string  `json:"nombre"     binding:"omitempty,max=200"`
	Porcentaje *float64 `json:"porcentaje" binding:"omitempty,gt=0,lte=100"`
	Nota       *float64 `json:"nota"       binding:"omitempty,gte=0,lte=5"`
}

// MateriaGradeResponse is the current weighted grade of one materia.
type MateriaGradeResponse struct {
	MateriaID        string  `json:"materia_id"`
	Codigo           string  `json:"codigo"`
	NotaActual       float64 `json:"nota_actual"`
	PorcentajeEvaluado float64 `json:"porcentaje_evaluado"`
}

// SemesterGPAResponse is the credit-weighted average for one semester.
type SemesterGPAResponse struct {
	Semestre int     `json:"semestre"`
	GPA      float64 `json:"gpa"`
	Creditos int     `json:"creditos"`
}

// GPAResponse is the cumulative credit-weighted average.
type GPAResponse struct {
	GPA       float64               `json:"gpa"`
	Creditos  int                   `json:"creditos"`
	Semestres []SemesterGPAResponse `json:"semestres"`
}

// SimulateGPARequest projects the cumulative GPA with hypothetical grades.
type SimulateGPARequest struct {
	Notas map[string]float64 `json:"notas" binding:"required"` // codigo -> hypothetical grade
}

// SimulateGPAResponse is the projected cumulative GPA.
type SimulateGPAResponse struct {
	GPAActual    float64 `json:"gpa_actual"`
	GPASimulado  float64 `json:"gpa_simulado"`
	Diferencia   float64 `json:"diferencia"`
}

// NeededGradeResponse is the grade required on the remaining percentage
// of a materia to reach the user's minimum passing grade.
type NeededGradeResponse struct {
	MateriaID          string  `json:"materia_id"`
	NotaObjetivo       float64 `json:"nota_objetivo"`
	PorcentajeRestante float64 `json:"porcentaje_restante"`
	NotaNecesaria      float64 `json:"nota_necesaria"`
	Alcanzable         bool    `json:"alcanzable"`
}

// AcademicProgressResponse aggregates GPA standing, per-estado course
// counts, active alerts, and the recent-semester trend.
type AcademicProgressResponse struct {
	GPA               float64              `json:"gpa"`
	CreditosAprobados int                  `json:"creditos_aprobados"`
	CreditosTotales   int                  `json:"creditos_totales"`
	PorcentajeAvance  float64              `json:"porcentaje_avance"`
	MateriasPorEstado map[string]int       `json:"materias_por_estado"`
	TotalMaterias     int                  `json:"total_materias"`
	Alertas           []GradeAlertResponse `json:"alertas"`
	Tendencia         string               `json:"tendencia"`
}

// GradeAlertResponse flags a materia at risk of dropping below the minimum.
type GradeAlertResponse struct {
	MateriaID  string  `json:"materia_id"`
	Codigo     string  `json:"codigo"`
	Nombre     string  `json:"nombre"`
	NotaActual float64 `json:"nota_actual"`
	Mensaje    string  `json:"mensaje"`
}
