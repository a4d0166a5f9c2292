package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// FranjaRepository is the time-slot preference data access interface.
type FranjaRepository interface {
	Create(ctx context.Context, franja *model.Franja) error
	GetByID(ctx context.Context, userID, id string) (*model.Franja, error)
	List(ctx context.Context, userID string, tipo string) ([]model.Franja, error)
	Update(ctx context.Context, franja *model.Franja) error
	Delete(ctx context.Context, userID, id string) error
}

type franjaRepo struct {
	db *gorm.DB
}

// NewFranjaRepo creates a FranjaRepository.
func NewFranjaRepo(db *gorm.DB) FranjaRepository {
	return &franjaRepo{db: db}
}

func (r *franjaRepo) Create(ctx context.Context, franja *model.Franja) error {
	return r.db.WithContext(ctx).Create(franja).Error
}

func (r *franjaRepo) GetByID(ctx context.Context, userID, id string) (*model.Franja, error) {
	var franja model.Franja
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&franja).Error
	if err != nil {
		return nil, err
	}
	return &franja, nil
}

func (r *franjaRepo) List(ctx context.Context, userID string, tipo string) ([]model.Franja, error) {
	var franjas []model.Franja
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if tipo != "" {
		db = db.Where("tipo = ?", tipo)
	}

	err := db.Order("dia ASC, hora_inicio ASC").Find(&franjas).Error
	return franjas, err
}

func (r *franjaRepo) Update(ctx context.Context, franja *model.Franja) error {
	return r.db.WithContext(ctx).Save(franja).Error
}

func (r *franjaRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Franja{}).Error
}
