package dto

// ── clase DTOs ──

// BloqueRequest is one weekly meeting block in a request body.
type BloqueRequest struct {
	Dia        int    `json:"dia"         binding:"required,gte=1,lte=6"`
	HoraInicio string `json:"hora_inicio" binding:"required"`
	HoraFin    string `json:"hora_fin"    binding:"required"`
}

// CreateClaseRequest registers a section for a materia.
type CreateClaseRequest struct {
	MateriaID string          `json:"materia_id" binding:"required,uuid"`
	NRC       string          `json:"nrc"        binding:"required,max=20"`
	Profesor  string          `json:"profesor"   binding:"max=200"`
	Horario   []BloqueRequest `json:"horario"    binding:"required,min=1,dive"`
}

// UpdateClaseRequest edits a section. Nil fields are left unchanged.
type UpdateClaseRequest struct {
	NRC      *string          `json:"nrc"      binding:"omitempty,max=20"`
	Profesor *string          `json:"profesor" binding:"omitempty,max=200"`
	Horario  *[]BloqueRequest `json:"horario"  binding:"omitempty,min=1,dive"`
}
