package model

// Configuracion holds per-user preferences for generation and grading.
type Configuracion struct {
	ID              string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          string  `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	EvitarMadrugada bool    `gorm:"not null;default:false"                         json:"evitar_madrugada"`
	EvitarNoche     bool    `gorm:"not null;default:false"                         json:"evitar_noche"`
	NotaMinima      float64 `gorm:"type:numeric(3,2);not null;default:3.00"        json:"nota_minima"`
	CreditosMaximos int     `gorm:"not null;default:21"                            json:"creditos_maximos"`
	BaseModel
}

// TableName sets the table name.
func (Configuracion) TableName() string { return "configuraciones" }
