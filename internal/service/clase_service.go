package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/model"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
)

// ── clase module errors ──

var (
	ErrClaseNotFound  = errors.New("clase not found")
	ErrClaseDuplicada = errors.New("a clase with that NRC already exists")
	ErrBloqueInvalido = errors.New("invalid time block")
)

// ClaseService manages the offered sections of each materia.
type ClaseService interface {
	Create(ctx context.Context, userID string, req *dto.CreateClaseRequest) (*model.Clase, error)
	Get(ctx context.Context, userID, id string) (*model.Clase, error)
	ListByMateria(ctx context.Context, userID, materiaID string) ([]model.Clase, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateClaseRequest) (*model.Clase, error)
	Delete(ctx context.Context, userID, id string) error
}

type claseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClaseService creates a ClaseService.
func NewClaseService(repo *repository.Repository, logger *zap.Logger) ClaseService {
	return &claseService{repo: repo, logger: logger}
}

func toBloques(reqs []dto.BloqueRequest) (model.BloqueList, error) {
	bloques := make(model.BloqueList, len(reqs))
	for i, b := range reqs {
		inicio, err := parseHora(b.HoraInicio)
		if err != nil {
			return nil, ErrBloqueInvalido
		}
		fin, err := parseHora(b.HoraFin)
		if err != nil {
			return nil, ErrBloqueInvalido
		}
		if inicio >= fin {
			return nil, ErrBloqueInvalido
		}
		bloques[i] = model.BloqueHorario{Dia: b.Dia, HoraInicio: b.HoraInicio, HoraFin: b.HoraFin}
	}
	return bloques, nil
}

func (s *claseService) Create(ctx context.Context, userID string, req *dto.CreateClaseRequest) (*model.Clase, error) {
	if _, err := s.repo.Materia.GetByID(ctx, userID, req.MateriaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}

	bloques, err := toBloques(req.Horario)
	if err != nil {
		return nil, err
	}

	clase := &model.Clase{
		UserID:    userID,
		MateriaID: req.MateriaID,
		NRC:       strings.ToUpper(strings.TrimSpace(req.NRC)),
		Profesor:  req.Profesor,
		Horario:   bloques,
	}
	if err := s.repo.Clase.Create(ctx, clase); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClaseDuplicada
		}
		return nil, err
	}

	s.logger.Info("clase created",
		zap.String("user_id", userID),
		zap.String("nrc", clase.NRC),
	)
	return clase, nil
}

func (s *claseService) Get(ctx context.Context, userID, id string) (*model.Clase, error) {
	clase, err := s.repo.Clase.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaseNotFound
		}
		return nil, err
	}
	return clase, nil
}

func (s *claseService) ListByMateria(ctx context.Context, userID, materiaID string) ([]model.Clase, error) {
	if _, err := s.repo.Materia.GetByID(ctx, userID, materiaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}
	return s.repo.Clase.ListByMateria(ctx, userID, materiaID)
}

func (s *claseService) Update(ctx context.Context, userID, id string, req *dto.UpdateClaseRequest) (*model.Clase, error) {
	clase, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.NRC != nil {
		clase.NRC = strings.ToUpper(strings.TrimSpace(*req.NRC))
	}
	if req.Profesor != nil {
		clase.Profesor = *req.Profesor
	}
	if req.Horario != nil {
		bloques, err := toBloques(*req.Horario)
		if err != nil {
			return nil, err
		}
		clase.Horario = bloques
	}

	if err := s.repo.Clase.Update(ctx, clase); err != nil {
		return nil, err
	}
	return clase, nil
}

func (s *claseService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Clase.Delete(ctx, userID, id)
}
