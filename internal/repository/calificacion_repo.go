package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// CalificacionRepository is the grade item data access interface.
type CalificacionRepository interface {
	Create(ctx context.Context, calificacion *model.Calificacion) error
	GetByID(ctx context.Context, userID, id string) (*model.Calificacion, error)
	ListByMateria(ctx context.Context, userID, materiaID string) ([]model.Calificacion, error)
	Update(ctx context.Context, calificacion *model.Calificacion) error
	Delete(ctx context.Context, userID, id string) error
}

type calificacionRepo struct {
	db *gorm.DB
}

// NewCalificacionRepo creates a CalificacionRepository.
func NewCalificacionRepo(db *gorm.DB) CalificacionRepository {
	return &calificacionRepo{db: db}
}

func (r *calificacionRepo) Create(ctx context.Context, calificacion *model.Calificacion) error {
	return r.db.WithContext(ctx).Create(calificacion).Error
}

func (r *calificacionRepo) GetByID(ctx context.Context, userID, id string) (*model.Calificacion, error) {
	var calificacion model.Calificacion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&calificacion).Error
	if err != nil {
		return nil, err
	}
	return &calificacion, nil
}

func (r *calificacionRepo) ListByMateria(ctx context.Context, userID, materiaID string) ([]model.Calificacion, error) {
	var calificaciones []model.Calificacion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND materia_id = ?", userID, materiaID).
		Order("created_at ASC").
		Find(&calificaciones).Error
	return calificaciones, err
}

func (r *calificacionRepo) Update(ctx context.Context, calificacion *model.Calificacion) error {
	return r.db.WithContext(ctx).Save(calificacion).Error
}

func (r *calificacionRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Calificacion{}).Error
}
