package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ClaseSnapshot is a frozen copy of a section stored inside a saved schedule.
// Later edits to the live clase do not alter saved schedules.
type ClaseSnapshot struct {
	ClaseID       string     `json:"clase_id"`
	MateriaCodigo string     `json:"materia_codigo"`
	MateriaNombre string     `json:"materia_nombre"`
	NRC           string     `json:"nrc"`
	Profesor      string     `json:"profesor"`
	Horario       BloqueList `json:"horario"`
}

// SnapshotList maps a JSONB array of section snapshots.
type SnapshotList []ClaseSnapshot

// Scan parses the JSONB text returned by PostgreSQL.
func (l *SnapshotList) Scan(src interface{}) error {
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
		return fmt.Errorf("SnapshotList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, l)
}

// Value serializes the list as JSONB.
func (l SnapshotList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// HorarioSeleccionado is a schedule combination the user chose to keep.
type HorarioSeleccionado struct {
	ID      string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  string       `gorm:"type:uuid;not null;index:idx_horarios_user_activo" json:"user_id"`
	Clases  SnapshotList `gorm:"type:jsonb;not null;default:'[]'"               json:"clases"`
	Puntaje int          `gorm:"not null;default:0"                             json:"puntaje"`
	Activo  bool         `gorm:"not null;default:true;index:idx_horarios_user_activo" json:"activo"`
	BaseModel
}

// TableName sets the table name.
func (HorarioSeleccionado) TableName() string { return "horarios_seleccionados" }
