package service

import (
	"go.uber.org/zap"

	"github.com/Samu-Kiss/Uni-App/config"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
	"github.com/Samu-Kiss/Uni-App/pkg/jwt"
	"github.com/Samu-Kiss/Uni-App/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth     AuthService
	Pensum   PensumService
	Clase    ClaseService
	Franja   FranjaService
	Schedule ScheduleService
	GPA      GPAService
	Config   ConfigService
	Export   ExportService
}

// NewService wires the aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Pensum:   NewPensumService(repo, logger),
		Clase:    NewClaseService(repo, logger),
		Franja:   NewFranjaService(repo, logger),
		Schedule: NewScheduleService(repo, logger),
		GPA:      NewGPAService(repo, logger),
		Config:   NewConfigService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}
