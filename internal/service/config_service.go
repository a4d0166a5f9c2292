package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/model"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
)

// ConfigService manages per-user preferences. Reads return defaults
// until the user saves something.
type ConfigService interface {
	Get(ctx context.Context, userID string) (*dto.ConfigResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateConfigRequest) (*dto.ConfigResponse, error)
}

type configService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConfigService creates a ConfigService.
func NewConfigService(repo *repository.Repository, logger *zap.Logger) ConfigService {
	return &configService{repo: repo, logger: logger}
}

func defaultConfiguracion(userID string) *model.Configuracion {
	return &model.Configuracion{
		UserID:          userID,
		NotaMinima:      3.0,
		CreditosMaximos: 21,
	}
}

func (s *configService) Get(ctx context.Context, userID string) (*dto.ConfigResponse, error) {
	cfg, err := s.repo.Configuracion.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = defaultConfiguracion(userID)
		} else {
			return nil, err
		}
	}
	return &dto.ConfigResponse{
		EvitarMadrugada: cfg.EvitarMadrugada,
		EvitarNoche:     cfg.EvitarNoche,
		NotaMinima:      cfg.NotaMinima,
		CreditosMaximos: cfg.CreditosMaximos,
	}, nil
}

func (s *configService) Update(ctx context.Context, userID string, req *dto.UpdateConfigRequest) (*dto.ConfigResponse, error) {
	cfg, err := s.repo.Configuracion.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = defaultConfiguracion(userID)
		} else {
			return nil, err
		}
	}

	if req.EvitarMadrugada != nil {
		cfg.EvitarMadrugada = *req.EvitarMadrugada
	}
	if req.EvitarNoche != nil {
		cfg.EvitarNoche = *req.EvitarNoche
	}
	if req.NotaMinima != nil {
		cfg.NotaMinima = *req.NotaMinima
	}
	if req.CreditosMaximos != nil {
		cfg.CreditosMaximos = *req.CreditosMaximos
	}

	if err := s.repo.Configuracion.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return &dto.ConfigResponse{
		EvitarMadrugada: cfg.EvitarMadrugada,
		EvitarNoche:     cfg.EvitarNoche,
		NotaMinima:      cfg.NotaMinima,
		CreditosMaximos: cfg.CreditosMaximos,
	}, nil
}
