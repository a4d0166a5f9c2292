package dto

// ── pensum DTOs ──

// CreateMateriaRequest adds a course to the pensum.
type CreateMateriaRequest struct {
	Codigo        string   `json:"codigo"        binding:"required,max=20"`
	Nombre        string   `json:"nombre"        binding:"required,max=200"`
	Creditos      int      `json:"creditos"      binding:"gte=0,lte=20"`
	Semestre      int      `json:"semestre"      binding:"required,gte=1,lte=20"`
	Estado        string   `json:"estado"`
	Color         string   `json:"color"         binding:"omitempty,hexcolor"`
	Prerequisitos []string `json:"prerequisitos"`
	Corequisitos  []string `json:"corequisitos"`
}

// UpdateMateriaRequest edits a course. Nil fields are left unchanged.
type UpdateMateriaRequest struct {
	Nombre        *string   `json:"nombre"        binding:"omitempty,max=200"`
	Creditos      *int      `json:"creditos"      binding:"omitempty,gte=0,lte=20"`
	Semestre      *int      `json:"semestre"      binding:"omitempty,gte=1,lte=20"`
	Color         *string   `json:"color"         binding:"omitempty,hexcolor"`
	Nota          *float64  `json:"nota"          binding:"omitempty,gte=0,lte=5"`
	Prerequisitos *[]string `json:"prerequisitos"`
	Corequisitos  *[]string `json:"corequisitos"`
}

// UpdateEstadoRequest changes a course's academic standing, optionally
// recording the final grade in the same call.
type UpdateEstadoRequest struct {
	Estado string   `json:"estado" binding:"required"`
	Nota   *float64 `json:"nota"   binding:"omitempty,gte=0,lte=5"`
}

// MoveMateriaRequest moves a course to another semester.
type MoveMateriaRequest struct {
	Semestre int `json:"semestre" binding:"required,gte=1,lte=20"`
}

// SimulatePerdidaRequest asks what would unlock later if a course is failed.
type SimulatePerdidaRequest struct {
	Codigo string `json:"codigo" binding:"required"`
}

// SimulatePerdidaResponse lists the downstream impact of failing a course.
type SimulatePerdidaResponse struct {
	Codigo           string   `json:"codigo"`
	MateriasAfectadas []string `json:"materias_afectadas"`
	CreditosAfectados int      `json:"creditos_afectados"`
	SemestresExtra    int      `json:"semestres_extra"`
}

// CheckCreditosResponse says whether adding credits to a semester stays
// under the configured per-semester maximum.
type CheckCreditosResponse struct {
	Permitido        bool `json:"permitido"`
	CreditosActuales int  `json:"creditos_actuales"`
	NuevoTotal       int  `json:"nuevo_total"`
	CreditosMaximos  int  `json:"creditos_maximos"`
	Exceso           int  `json:"exceso"`
}

// PensumValidationResponse reports structural problems across the pensum:
// dangling requisito references, prerequisites scheduled in the same or a
// later semester, and circular dependencies.
type PensumValidationResponse struct {
	Valida  bool     `json:"valida"`
	Errores []string `json:"errores"`
}

// PensumProgressResponse summarizes credit progress across the pensum.
type PensumProgressResponse struct {
	CreditosTotales   int     `json:"creditos_totales"`
	CreditosAprobados int     `json:"creditos_aprobados"`
	CreditosInscritos int     `json:"creditos_inscritos"`
	PorcentajeAvance  float64 `json:"porcentaje_avance"`
}
