package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// ConfiguracionRepository is the user preference data access interface.
type ConfiguracionRepository interface {
	GetByUser(ctx context.Context, userID string) (*model.Configuracion, error)
	Upsert(ctx context.Context, cfg *model.Configuracion) error
}

type configuracionRepo struct {
	db *gorm.DB
}

// NewConfiguracionRepo creates a ConfiguracionRepository.
func NewConfiguracionRepo(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) GetByUser(ctx context.Context, userID string) (*model.Configuracion, error) {
	var cfg model.Configuracion
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configuracionRepo) Upsert(ctx context.Context, cfg *model.Configuracion) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"evitar_madrugada", "evitar_noche", "nota_minima", "updated_at"}),
		}).
		Create(cfg).Error
}
