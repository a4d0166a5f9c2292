package model

// Franja slot types: blocked slots exclude combinations, preferred slots score them up.
const (
	FranjaBloqueada = "blocked"
	FranjaPreferida = "preferred"
)

// Franja is a user-defined weekly time slot used by the schedule generator.
type Franja struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     string `gorm:"type:uuid;not null;index:idx_franjas_user_tipo" json:"user_id"`
	Tipo       string `gorm:"type:varchar(20);not null;index:idx_franjas_user_tipo" json:"tipo"`
	Dia        int    `gorm:"not null"                                       json:"dia"`
	HoraInicio string `gorm:"type:varchar(5);not null"                       json:"hora_inicio"`
	HoraFin    string `gorm:"type:varchar(5);not null"                       json:"hora_fin"`
	BaseModel
}

// TableName sets the table name.
func (Franja) TableName() string { return "franjas" }
