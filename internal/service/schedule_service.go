package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/model"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
)

// ── schedule module errors ──

var (
	ErrHorarioNotFound      = errors.New("saved schedule not found")
	ErrSeleccionConflictiva = errors.New("selected sections overlap in time")
	ErrSeleccionDuplicada   = errors.New("selection includes more than one section of the same materia")
	ErrNoActiveSchedule     = errors.New("no active schedule")
)

// ScheduleService generates, persists and inspects schedule combinations.
type ScheduleService interface {
	Generate(ctx context.Context, userID string, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Select(ctx context.Context, userID string, req *dto.SelectScheduleRequest) (*model.HorarioSeleccionado, error)
	GetActive(ctx context.Context, userID string) (*model.HorarioSeleccionado, error)
	List(ctx context.Context, userID string) ([]model.HorarioSeleccionado, error)
	Delete(ctx context.Context, userID, id string) error
	ListConflicts(ctx context.Context, userID string) ([]dto.ConflictoResponse, error)
	Grid(ctx context.Context, userID string) (*dto.GridResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// loadEnrolled fetches the enrolled materias with their sections, grouped.
func (s *scheduleService) loadEnrolled(ctx context.Context, userID string) ([]CourseSections, error) {
	materias, err := s.repo.Materia.ListByEstado(ctx, userID, model.EstadoInscrita)
	if err != nil {
		return nil, err
	}
	if len(materias) == 0 {
		return nil, ErrNoEnrolledCourses
	}

	ids := make([]string, len(materias))
	for i, m := range materias {
		ids[i] = m.ID
	}
	clases, err := s.repo.Clase.ListByMaterias(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	porMateria := make(map[string][]model.Clase, len(materias))
	for _, c := range clases {
		porMateria[c.MateriaID] = append(porMateria[c.MateriaID], c)
	}

	courses := make([]CourseSections, len(materias))
	for i, m := range materias {
		courses[i] = CourseSections{Materia: m, Clases: porMateria[m.ID]}
	}
	return courses, nil
}

func (s *scheduleService) loadOptions(ctx context.Context, userID string, req *dto.GenerateScheduleRequest) (*GeneratorOptions, error) {
	bloqueadas, err := s.repo.Franja.List(ctx, userID, model.FranjaBloqueada)
	if err != nil {
		return nil, err
	}
	preferidas, err := s.repo.Franja.List(ctx, userID, model.FranjaPreferida)
	if err != nil {
		return nil, err
	}

	opts := &GeneratorOptions{Bloqueadas: bloqueadas, Preferidas: preferidas}

	cfg, err := s.repo.Configuracion.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if cfg != nil {
		opts.EvitarMadrugada = cfg.EvitarMadrugada
		opts.EvitarNoche = cfg.EvitarNoche
	}
	// Request toggles win over stored preferences.
	if req != nil {
		if req.EvitarMadrugada != nil {
			opts.EvitarMadrugada = *req.EvitarMadrugada
		}
		if req.EvitarNoche != nil {
			opts.EvitarNoche = *req.EvitarNoche
		}
	}
	return opts, nil
}

func (s *scheduleService) Generate(ctx context.Context, userID string, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	courses, err := s.loadEnrolled(ctx, userID)
	if err != nil {
		return nil, err
	}
	opts, err := s.loadOptions(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	result, err := GenerateCombinations(courses, opts)
	if err != nil {
		return nil, err
	}

	if result.Truncated {
		s.logger.Warn("combination enumeration truncated",
			zap.String("user_id", userID),
			zap.Int("cap", maxCombinations),
		)
	}

	combinaciones := make([]dto.CombinacionResponse, len(result.Combinaciones))
	for i, c := range result.Combinaciones {
		combinaciones[i] = dto.CombinacionResponse{Clases: c.Clases, Puntaje: c.Puntaje}
	}
	return &dto.GenerateScheduleResponse{
		Combinaciones:  combinaciones,
		Total:          len(combinaciones),
		TotalPosibles:  result.TotalPosibles,
		TotalEvaluadas: result.TotalEvaluadas,
		Truncado:       result.Truncated,
		Advertencia:    result.Advertencia,
	}, nil
}

func (s *scheduleService) Select(ctx context.Context, userID string, req *dto.SelectScheduleRequest) (*model.HorarioSeleccionado, error) {
	candidatos := make([]*candidato, 0, len(req.ClaseIDs))
	materiasVistas := make(map[string]bool, len(req.ClaseIDs))

	for _, id := range req.ClaseIDs {
		clase, err := s.repo.Clase.GetByID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClaseNotFound
			}
			return nil, err
		}
		if materiasVistas[clase.MateriaID] {
			return nil, ErrSeleccionDuplicada
		}
		materiasVistas[clase.MateriaID] = true

		bloques, err := resolverBloques(clase)
		if err != nil {
			return nil, err
		}
		c := &candidato{snapshot: snapshotDe(clase), bloques: bloques}
		if !compatible(candidatos, c) {
			return nil, ErrSeleccionConflictiva
		}
		candidatos = append(candidatos, c)
	}

	preferidas, err := s.repo.Franja.List(ctx, userID, model.FranjaPreferida)
	if err != nil {
		return nil, err
	}
	preferidasMin, err := resolverFranjas(preferidas)
	if err != nil {
		return nil, err
	}

	snapshots := make(model.SnapshotList, len(candidatos))
	for i, c := range candidatos {
		snapshots[i] = c.snapshot
	}

	horario := &model.HorarioSeleccionado{
		UserID:  userID,
		Clases:  snapshots,
		Puntaje: puntuar(candidatos, preferidasMin),
		Activo:  true,
	}

	// Only one schedule is active at a time.
	if err := s.repo.Horario.DeactivateAll(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.Horario.Create(ctx, horario); err != nil {
		return nil, err
	}

	s.logger.Info("schedule selected",
		zap.String("user_id", userID),
		zap.Int("clases", len(snapshots)),
		zap.Int("puntaje", horario.Puntaje),
	)
	return horario, nil
}

func (s *scheduleService) GetActive(ctx context.Context, userID string) (*model.HorarioSeleccionado, error) {
	horario, err := s.repo.Horario.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSchedule
		}
		return nil, err
	}
	return horario, nil
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]model.HorarioSeleccionado, error) {
	return s.repo.Horario.List(ctx, userID)
}

func (s *scheduleService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Horario.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHorarioNotFound
		}
		return err
	}
	return s.repo.Horario.Delete(ctx, userID, id)
}

// ListConflicts reports every pairwise overlap among the sections of the
// user's enrolled materias, so impossible pairs surface before generation.
func (s *scheduleService) ListConflicts(ctx context.Context, userID string) ([]dto.ConflictoResponse, error) {
	courses, err := s.loadEnrolled(ctx, userID)
	if err != nil {
		return nil, err
	}

	type entry struct {
		snapshot model.ClaseSnapshot
		bloques  []bloqueMin
	}
	var entradas []entry
	for i := range courses {
		materia := courses[i].Materia
		for j := range courses[i].Clases {
			clase := courses[i].Clases[j]
			if clase.Materia == nil {
				clase.Materia = &materia
			}
			bloques, err := resolverBloques(&clase)
			if err != nil {
				return nil, err
			}
			entradas = append(entradas, entry{snapshot: snapshotDe(&clase), bloques: bloques})
		}
	}

	conflictos := make([]dto.ConflictoResponse, 0)
	for i := 0; i < len(entradas); i++ {
		for j := i + 1; j < len(entradas); j++ {
			// Sections of the same materia never coexist in a combination.
			if entradas[i].snapshot.MateriaCodigo == entradas[j].snapshot.MateriaCodigo {
				continue
			}
			dia := diaEnConflicto(entradas[i].bloques, entradas[j].bloques)
			if dia == 0 {
				continue
			}
			conflictos = append(conflictos, dto.ConflictoResponse{
				ClaseA:  entradas[i].snapshot,
				ClaseB:  entradas[j].snapshot,
				Dia:     dia,
				DiaName: model.DiaNombres[dia],
			})
		}
	}
	return conflictos, nil
}

// diaEnConflicto returns the first day where two block sets overlap, or 0.
func diaEnConflicto(a, b []bloqueMin) int {
	for _, x := range a {
		for _, y := range b {
			if solapan(x, y) {
				return x.dia
			}
		}
	}
	return 0
}

func (s *scheduleService) Grid(ctx context.Context, userID string) (*dto.GridResponse, error) {
	horario, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	dias := make(map[int][]dto.GridCell)
	for _, snap := range horario.Clases {
		for _, b := range snap.Horario {
			dias[b.Dia] = append(dias[b.Dia], dto.GridCell{
				MateriaCodigo: snap.MateriaCodigo,
				MateriaNombre: snap.MateriaNombre,
				NRC:           snap.NRC,
				Profesor:      snap.Profesor,
				HoraInicio:    b.HoraInicio,
				HoraFin:       b.HoraFin,
			})
		}
	}
	for dia := range dias {
		celdas := dias[dia]
		sort.Slice(celdas, func(i, j int) bool {
			return celdas[i].HoraInicio < celdas[j].HoraInicio
		})
		dias[dia] = celdas
	}
	return &dto.GridResponse{Dias: dias, Metricas: gridMetrics(dias)}, nil
}

// gridMetrics derives free days, gaps between consecutive blocks and the
// daily time range from the placed cells. Cells per day must already be
// sorted by start time.
func gridMetrics(dias map[int][]dto.GridCell) dto.GridMetrics {
	m := dto.GridMetrics{DiasLibres: model.DiaSabado - len(dias)}

	primera := 24 * 60
	ultima := 0
	for _, celdas := range dias {
		finPrevio := -1
		for _, c := range celdas {
			inicio, err := parseHora(c.HoraInicio)
			if err != nil {
				continue
			}
			fin, err := parseHora(c.HoraFin)
			if err != nil {
				continue
			}
			if inicio < primera {
				primera = inicio
			}
			if fin > ultima {
				ultima = fin
			}
			if finPrevio >= 0 && inicio > finPrevio {
				m.Huecos++
				m.HuecosMinutos += inicio - finPrevio
			}
			if fin > finPrevio {
				finPrevio = fin
			}
		}
	}
	if ultima > 0 {
		m.PrimeraClase = fmt.Sprintf("%02d:%02d", primera/60, primera%60)
		m.UltimaClase = fmt.Sprintf("%02d:%02d", ultima/60, ultima%60)
	}
	return m
}
