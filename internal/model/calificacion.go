package model

// Calificacion is one weighted grade item in a materia (parcial, taller, final).
// Nota is nil while the item is ungraded.
type Calificacion struct {
	ID         string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     string   `gorm:"type:uuid;not null"                             json:"user_id"`
	MateriaID  string   `gorm:"type:uuid;not null;index"                       json:"materia_id"`
	Nombre     string   `gorm:"type:varchar(200);not null"                     json:"nombre"`
	Porcentaje float64  `gorm:"type:numeric(5,2);not null"                     json:"porcentaje"`
	Nota       *float64 `gorm:"type:numeric(3,2)"                              json:"nota"`
	BaseModel

	Materia *Materia `gorm:"foreignKey:MateriaID" json:"materia,omitempty"`
}

// TableName sets the table name.
func (Calificacion) TableName() string { return "calificaciones" }
