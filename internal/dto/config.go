package dto

// ── configuration DTOs ──

// UpdateConfigRequest edits user preferences. Nil fields are left unchanged.
type UpdateConfigRequest struct {
	EvitarMadrugada *bool    `json:"evitar_madrugada"`
	EvitarNoche     *bool    `json:"evitar_noche"`
	NotaMinima      *float64 `json:"nota_minima"      binding:"omitempty,gte=0,lte=5"`
	CreditosMaximos *int     `json:"creditos_maximos" binding:"omitempty,gte=1,lte=30"`
}

// ConfigResponse is the user's stored preferences.
type ConfigResponse struct {
	EvitarMadrugada bool    `json:"evitar_madrugada"`
	EvitarNoche     bool    `json:"evitar_noche"`
	NotaMinima      float64 `json:"nota_minima"`
	CreditosMaximos int     `json:"creditos_maximos"`
}
