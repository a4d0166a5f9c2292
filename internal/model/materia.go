package model

// Academic standing of a materia in the user's pensum.
const (
	EstadoPendiente = "pending"
	EstadoInscrita  = "enrolled"
	EstadoAprobada  = "passed"
	EstadoReprobada = "failed"
	EstadoRetirada  = "dropped"
	EstadoBloqueada = "blocked"
)

// ValidEstados lists the accepted materia states.
var ValidEstados = []string{
	EstadoPendiente, EstadoInscrita, EstadoAprobada,
	EstadoReprobada, EstadoRetirada, EstadoBloqueada,
}

// IsValidEstado reports whether s is a recognized materia state.
func IsValidEstado(s string) bool {
	for _, e := range ValidEstados {
		if s == e {
			return true
		}
	}
	return false
}

// Materia is a course in the user's pensum.
type Materia struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        string     `gorm:"type:uuid;not null;index:idx_materias_user_estado" json:"user_id"`
	Codigo        string     `gorm:"type:varchar(20);not null"                      json:"codigo"`
	Nombre        string     `gorm:"type:varchar(200);not null"                     json:"nombre"`
	Creditos      int        `gorm:"not null;default:0"                             json:"creditos"`
	Semestre      int        `gorm:"not null;default:1"                             json:"semestre"`
	Estado        string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_materias_user_estado" json:"estado"`
	Color         string     `gorm:"type:varchar(7)"                                json:"color,omitempty"`
	Nota          *float64   `gorm:"type:numeric(3,1)"                              json:"nota,omitempty"`
	Prerequisitos StringList `gorm:"type:jsonb;not null;default:'[]'"               json:"prerequisitos"`
	Corequisitos  StringList `gorm:"type:jsonb;not null;default:'[]'"               json:"corequisitos"`
	BaseModel

	User   *User   `gorm:"foreignKey:UserID"    json:"user,omitempty"`
	Clases []Clase `gorm:"foreignKey:MateriaID" json:"clases,omitempty"`
}

// TableName sets the table name.
func (Materia) TableName() string { return "materias" }
