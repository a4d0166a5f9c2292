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

// ── franja module errors ──

var (
	ErrFranjaNotFound = errors.New("franja not found")
	ErrFranjaInvalida = errors.New("invalid franja slot")
)

// FranjaService manages blocked and preferred weekly slots.
type FranjaService interface {
	Create(ctx context.Context, userID string, req *dto.CreateFranjaRequest) (*model.Franja, error)
	List(ctx context.Context, userID string, tipo string) ([]model.Franja, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateFranjaRequest) (*model.Franja, error)
	Delete(ctx context.Context, userID, id string) error
}

type franjaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFranjaService creates a FranjaService.
func NewFranjaService(repo *repository.Repository, logger *zap.Logger) FranjaService {
	return &franjaService{repo: repo, logger: logger}
}

func validarFranja(dia int, horaInicio, horaFin string) error {
	if dia < model.DiaLunes || dia > model.DiaSabado {
		return ErrFranjaInvalida
	}
	inicio, err := parseHora(horaInicio)
	if err != nil {
		return ErrFranjaInvalida
	}
	fin, err := parseHora(horaFin)
	if err != nil {
		return ErrFranjaInvalida
	}
	if inicio >= fin {
		return ErrFranjaInvalida
	}
	return nil
}

func (s *franjaService) Create(ctx context.Context, userID string, req *dto.CreateFranjaRequest) (*model.Franja, error) {
	if err := validarFranja(req.Dia, req.HoraInicio, req.HoraFin); err != nil {
		return nil, err
	}

	franja := &model.Franja{
		UserID:     userID,
		Tipo:       req.Tipo,
		Dia:        req.Dia,
		HoraInicio: req.HoraInicio,
		HoraFin:    req.HoraFin,
	}
	if err := s.repo.Franja.Create(ctx, franja); err != nil {
		return nil, err
	}
	return franja, nil
}

func (s *franjaService) List(ctx context.Context, userID string, tipo string) ([]model.Franja, error) {
	if tipo != "" && tipo != model.FranjaBloqueada && tipo != model.FranjaPreferida {
		return nil, ErrFranjaInvalida
	}
	return s.repo.Franja.List(ctx, userID, tipo)
}

func (s *franjaService) Update(ctx context.Context, userID, id string, req *dto.UpdateFranjaRequest) (*model.Franja, error) {
	franja, err := s.repo.Franja.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFranjaNotFound
		}
		return nil, err
	}

	if req.Tipo != nil {
		franja.Tipo = *req.Tipo
	}
	if req.Dia != nil {
		franja.Dia = *req.Dia
	}
	if req.HoraInicio != nil {
		franja.HoraInicio = *req.HoraInicio
	}
	if req.HoraFin != nil {
		franja.HoraFin = *req.HoraFin
	}
	if err := validarFranja(franja.Dia, franja.HoraInicio, franja.HoraFin); err != nil {
		return nil, err
	}

	if err := s.repo.Franja.Update(ctx, franja); err != nil {
		return nil, err
	}
	return franja, nil
}

func (s *franjaService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Franja.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFranjaNotFound
		}
		return err
	}
	return s.repo.Franja.Delete(ctx, userID, id)
}
