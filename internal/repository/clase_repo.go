package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// ClaseRepository is the section data access interface.
type ClaseRepository interface {
	Create(ctx context.Context, clase *model.Clase) error
	GetByID(ctx context.Context, userID, id string) (*model.Clase, error)
	ListByMateria(ctx context.Context, userID, materiaID string) ([]model.Clase, error)
	ListByMaterias(ctx context.Context, userID string, materiaIDs []string) ([]model.Clase, error)
	Update(ctx context.Context, clase *model.Clase) error
	Delete(ctx context.Context, userID, id string) error
}

type claseRepo struct {
	db *gorm.DB
}

// NewClaseRepo creates a ClaseRepository.
func NewClaseRepo(db *gorm.DB) ClaseRepository {
	return &claseRepo{db: db}
}

func (r *claseRepo) Create(ctx context.Context, clase *model.Clase) error {
	return r.db.WithContext(ctx).Create(clase).Error
}

func (r *claseRepo) GetByID(ctx context.Context, userID, id string) (*model.Clase, error) {
	var clase model.Clase
	err := r.db.WithContext(ctx).
		Preload("Materia").
		Where("user_id = ? AND id = ?", userID, id).
		First(&clase).Error
	if err != nil {
		return nil, err
	}
	return &clase, nil
}

func (r *claseRepo) ListByMateria(ctx context.Context, userID, materiaID string) ([]model.Clase, error) {
	var clases []model.Clase
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND materia_id = ?", userID, materiaID).
		Order("nrc ASC").
		Find(&clases).Error
	return clases, err
}

func (r *claseRepo) ListByMaterias(ctx context.Context, userID string, materiaIDs []string) ([]model.Clase, error) {
	if len(materiaIDs) == 0 {
		return nil, nil
	}
	var clases []model.Clase
	err := r.db.WithContext(ctx).
		Preload("Materia").
		Where("user_id = ? AND materia_id IN ?", userID, materiaIDs).
		Order("nrc ASC").
		Find(&clases).Error
	return clases, err
}

func (r *claseRepo) Update(ctx context.Context, clase *model.Clase) error {
	return r.db.WithContext(ctx).Save(clase).Error
}

func (r *claseRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Clase{}).Error
}
