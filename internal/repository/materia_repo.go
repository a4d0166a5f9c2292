package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// MateriaRepository is the pensum course data access interface.
type MateriaRepository interface {
	Create(ctx context.Context, materia *model.Materia) error
	GetByID(ctx context.Context, userID, id string) (*model.Materia, error)
	GetByCodigo(ctx context.Context, userID, codigo string) (*model.Materia, error)
	List(ctx context.Context, userID string, estado string, semestre *int) ([]model.Materia, error)
	ListByEstado(ctx context.Context, userID, estado string) ([]model.Materia, error)
	Update(ctx context.Context, materia *model.Materia) error
	Delete(ctx context.Context, userID, id string) error
}

type materiaRepo struct {
	db *gorm.DB
}

// NewMateriaRepo creates a MateriaRepository.
func NewMateriaRepo(db *gorm.DB) MateriaRepository {
	return &materiaRepo{db: db}
}

func (r *materiaRepo) Create(ctx context.Context, materia *model.Materia) error {
	return r.db.WithContext(ctx).Create(materia).Error
}

func (r *materiaRepo) GetByID(ctx context.Context, userID, id string) (*model.Materia, error) {
	var materia model.Materia
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&materia).Error
	if err != nil {
		return nil, err
	}
	return &materia, nil
}

func (r *materiaRepo) GetByCodigo(ctx context.Context, userID, codigo string) (*model.Materia, error) {
	var materia model.Materia
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND codigo = ?", userID, codigo).
		First(&materia).Error
	if err != nil {
		return nil, err
	}
	return &materia, nil
}

func (r *materiaRepo) List(ctx context.Context, userID string, estado string, semestre *int) ([]model.Materia, error) {
	var materias []model.Materia
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if estado != "" {
		db = db.Where("estado = ?", estado)
	}
	if semestre != nil {
		db = db.Where("semestre = ?", *semestre)
	}

	err := db.Order("semestre ASC, codigo ASC").Find(&materias).Error
	return materias, err
}

func (r *materiaRepo) ListByEstado(ctx context.Context, userID, estado string) ([]model.Materia, error) {
	var materias []model.Materia
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND estado = ?", userID, estado).
		Order("codigo ASC").
		Find(&materias).Error
	return materias, err
}

func (r *materiaRepo) Update(ctx context.Context, materia *model.Materia) error {
	return r.db.WithContext(ctx).Save(materia).Error
}

func (r *materiaRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Materia{}).Error
}
