package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// HorarioRepository is the saved-schedule data access interface.
type HorarioRepository interface {
	Create(ctx context.Context, horario *model.HorarioSeleccionado) error
	GetByID(ctx context.Context, userID, id string) (*model.HorarioSeleccionado, error)
	GetActive(ctx context.Context, userID string) (*model.HorarioSeleccionado, error)
	List(ctx context.Context, userID string) ([]model.HorarioSeleccionado, error)
	DeactivateAll(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
}

type horarioRepo struct {
	db *gorm.DB
}

// NewHorarioRepo creates a HorarioRepository.
func NewHorarioRepo(db *gorm.DB) HorarioRepository {
	return &horarioRepo{db: db}
}

func (r *horarioRepo) Create(ctx context.Context, horario *model.HorarioSeleccionado) error {
	return r.db.WithContext(ctx).Create(horario).Error
}

func (r *horarioRepo) GetByID(ctx context.Context, userID, id string) (*model.HorarioSeleccionado, error) {
	var horario model.HorarioSeleccionado
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&horario).Error
	if err != nil {
		return nil, err
	}
	return &horario, nil
}

func (r *horarioRepo) GetActive(ctx context.Context, userID string) (*model.HorarioSeleccionado, error) {
	var horario model.HorarioSeleccionado
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND activo = ?", userID, true).
		Order("created_at DESC").
		First(&horario).Error
	if err != nil {
		return nil, err
	}
	return &horario, nil
}

func (r *horarioRepo) List(ctx context.Context, userID string) ([]model.HorarioSeleccionado, error) {
	var horarios []model.HorarioSeleccionado
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&horarios).Error
	return horarios, err
}

func (r *horarioRepo) DeactivateAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.HorarioSeleccionado{}).
		Where("user_id = ? AND activo = ?", userID, true).
		Update("activo", false).Error
}

func (r *horarioRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.HorarioSeleccionado{}).Error
}
