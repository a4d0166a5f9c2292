package dto

// ── franja DTOs ──

// CreateFranjaRequest registers a blocked or preferred weekly slot.
type CreateFranjaRequest struct {
	Tipo       string `json:"tipo"        binding:"required,oneof=blocked preferred"`
	Dia        int    `json:"dia"         binding:"required,gte=1,lte=6"`
	HoraInicio string `json:"hora_inicio" binding:"required"`
	HoraFin    string `json:"hora_fin"    binding:"required"`
}

// UpdateFranjaRequest edits a slot. Nil fields are left unchanged.
type UpdateFranjaRequest struct {
	Tipo       *string `json:"tipo"        binding:"omitempty,oneof=blocked preferred"`
	Dia        *int    `json:"dia"         binding:"omitempty,gte=1,lte=6"`
	HoraInicio *string `json:"hora_inicio"`
	HoraFin    *string `json:"hora_fin"`
}
