package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Days of the week for schedule blocks. Sunday has no classes.
const (
	DiaLunes     = 1
	DiaMartes    = 2
	DiaMiercoles = 3
	DiaJueves    = 4
	DiaViernes   = 5
	DiaSabado    = 6
)

// DiaNombres maps day numbers to display names.
var DiaNombres = map[int]string{
	DiaLunes:     "Lunes",
	DiaMartes:    "Martes",
	DiaMiercoles: "Miércoles",
	DiaJueves:    "Jueves",
	DiaViernes:   "Viernes",
	DiaSabado:    "Sábado",
}

// BloqueHorario is a single weekly meeting block.
// HoraInicio and HoraFin are "HH:MM" in 24-hour local time.
type BloqueHorario struct {
	Dia        int    `json:"dia"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

// BloqueList maps a JSONB array of schedule blocks.
type BloqueList []BloqueHorario

// Scan parses the JSONB text returned by PostgreSQL.
func (l *BloqueList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("BloqueList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, l)
}

// Value serializes the list as JSONB.
func (l BloqueList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Clase is one offered section of a materia, identified by its NRC.
type Clase struct {
	ID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string     `gorm:"type:uuid;not null"                             json:"user_id"`
	MateriaID string     `gorm:"type:uuid;not null;index"                       json:"materia_id"`
	NRC       string     `gorm:"type:varchar(20);not null;column:nrc"           json:"nrc"`
	Profesor  string     `gorm:"type:varchar(200)"                              json:"profesor"`
	Horario   BloqueList `gorm:"type:jsonb;not null;default:'[]'"               json:"horario"`
	BaseModel

	Materia *Materia `gorm:"foreignKey:MateriaID" json:"materia,omitempty"`
}

// TableName sets the table name.
func (Clase) TableName() string { return "clases" }
