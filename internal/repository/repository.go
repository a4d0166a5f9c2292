package repository

import "gorm.io/gorm"

// Repository aggregates all per-entity repositories.
type Repository struct {
	User          UserRepository
	Materia       MateriaRepository
	Clase         ClaseRepository
	Franja        FranjaRepository
	Horario       HorarioRepository
	Configuracion ConfiguracionRepository
	Calificacion  CalificacionRepository
}

// NewRepository wires the aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Materia:       NewMateriaRepo(db),
		Clase:         NewClaseRepo(db),
		Franja:        NewFranjaRepo(db),
		Horario:       NewHorarioRepo(db),
		Configuracion: NewConfiguracionRepo(db),
		Calificacion:  NewCalificacionRepo(db),
	}
}
