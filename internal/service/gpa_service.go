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

// ── gpa module errors ──

var (
	ErrCalificacionNotFound = errors.New("calificacion not found")
	ErrPorcentajeExcedido   = errors.New("grade item percentages exceed 100")
	ErrSinCalificaciones    = errors.New("materia has no graded items")
)

// Grades run on a 0 to 5 scale.
const notaMaxima = 5.0

// GPAService manages grade items and the derived averages.
type GPAService interface {
	CreateCalificacion(ctx context.Context, userID string, req *dto.CreateCalificacionRequest) (*model.Calificacion, error)
	ListCalificaciones(ctx context.Context, userID, materiaID string) ([]model.Calificacion, error)
	UpdateCalificacion(ctx context.Context, userID, id string, req *dto.UpdateCalificacionRequest) (*model.Calificacion, error)
	DeleteCalificacion(ctx context.Context, userID, id string) error
	MateriaGrade(ctx context.Context, userID, materiaID string) (*dto.MateriaGradeResponse, error)
	GPA(ctx context.Context, userID string) (*dto.GPAResponse, error)
	Simulate(ctx context.Context, userID string, req *dto.SimulateGPARequest) (*dto.SimulateGPAResponse, error)
	NeededGrade(ctx context.Context, userID, materiaID string) (*dto.NeededGradeResponse, error)
	Alerts(ctx context.Context, userID string) ([]dto.GradeAlertResponse, error)
	AcademicProgress(ctx context.Context, userID string) (*dto.AcademicProgressResponse, error)
}

type gpaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGPAService creates a GPAService.
func NewGPAService(repo *repository.Repository, logger *zap.Logger) GPAService {
	return &gpaService{repo: repo, logger: logger}
}

func (s *gpaService) CreateCalificacion(ctx context.Context, userID string, req *dto.CreateCalificacionRequest) (*model.Calificacion, error) {
	if _, err := s.repo.Materia.GetByID(ctx, userID, req.MateriaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}

	existentes, err := s.repo.Calificacion.ListByMateria(ctx, userID, req.MateriaID)
	if err != nil {
		return nil, err
	}
	total := req.Porcentaje
	for _, c := range existentes {
		total += c.Porcentaje
	}
	if total > 100 {
		return nil, ErrPorcentajeExcedido
	}

	calificacion := &model.Calificacion{
		UserID:     userID,
		MateriaID:  req.MateriaID,
		Nombre:     req.Nombre,
		Porcentaje: req.Porcentaje,
		Nota:       req.Nota,
	}
	if err := s.repo.Calificacion.Create(ctx, calificacion); err != nil {
		return nil, err
	}
	return calificacion, nil
}

func (s *gpaService) ListCalificaciones(ctx context.Context, userID, materiaID string) ([]model.Calificacion, error) {
	if _, err := s.repo.Materia.GetByID(ctx, userID, materiaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}
	return s.repo.Calificacion.ListByMateria(ctx, userID, materiaID)
}

func (s *gpaService) UpdateCalificacion(ctx context.Context, userID, id string, req *dto.UpdateCalificacionRequest) (*model.Calificacion, error) {
	calificacion, err := s.repo.Calificacion.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalificacionNotFound
		}
		return nil, err
	}

	if req.Nombre != nil {
		calificacion.Nombre = *req.Nombre
	}
	if req.Porcentaje != nil {
		hermanas, err := s.repo.Calificacion.ListByMateria(ctx, userID, calificacion.MateriaID)
		if err != nil {
			return nil, err
		}
		total := *req.Porcentaje
		for _, c := range hermanas {
			if c.ID != calificacion.ID {
				total += c.Porcentaje
			}
		}
		if total > 100 {
			return nil, ErrPorcentajeExcedido
		}
		calificacion.Porcentaje = *req.Porcentaje
	}
	if req.Nota != nil {
		calificacion.Nota = req.Nota
	}

	if err := s.repo.Calificacion.Update(ctx, calificacion); err != nil {
		return nil, err
	}
	return calificacion, nil
}

func (s *gpaService) DeleteCalificacion(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Calificacion.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCalificacionNotFound
		}
		return err
	}
	return s.repo.Calificacion.Delete(ctx, userID, id)
}

// notaActual returns the weighted average over graded items and the
// evaluated percentage. A materia with nothing graded returns (0, 0).
func notaActual(calificaciones []model.Calificacion) (float64, float64) {
	var suma, evaluado float64
	for _, c := range calificaciones {
		if c.Nota == nil {
			continue
		}
		suma += *c.Nota * c.Porcentaje
		evaluado += c.Porcentaje
	}
	if evaluado == 0 {
		return 0, 0
	}
	return suma / evaluado, evaluado
}

func (s *gpaService) MateriaGrade(ctx context.Context, userID, materiaID string) (*dto.MateriaGradeResponse, error) {
	materia, err := s.repo.Materia.GetByID(ctx, userID, materiaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}
	calificaciones, err := s.repo.Calificacion.ListByMateria(ctx, userID, materiaID)
	if err != nil {
		return nil, err
	}

	nota, evaluado := notaActual(calificaciones)
	if evaluado == 0 {
		return nil, ErrSinCalificaciones
	}
	return &dto.MateriaGradeResponse{
		MateriaID:          materiaID,
		Codigo:             materia.Codigo,
		NotaActual:         nota,
		PorcentajeEvaluado: evaluado,
	}, nil
}

// materiaNota is an internal projection used by the averages.
type materiaNota struct {
	materia model.Materia
	nota    float64
}

// gradedMaterias collects every materia that has at least one graded item.
func (s *gpaService) gradedMaterias(ctx context.Context, userID string) ([]materiaNota, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}

	var conNota []materiaNota
	for _, m := range materias {
		calificaciones, err := s.repo.Calificacion.ListByMateria(ctx, userID, m.ID)
		if err != nil {
			return nil, err
		}
		nota, evaluado := notaActual(calificaciones)
		if evaluado == 0 {
			continue
		}
		conNota = append(conNota, materiaNota{materia: m, nota: nota})
	}
	return conNota, nil
}

func promedioPonderado(items []materiaNota) (float64, int) {
	var suma float64
	var creditos int
	for _, it := range items {
		suma += it.nota * float64(it.materia.Creditos)
		creditos += it.materia.Creditos
	}
	if creditos == 0 {
		return 0, 0
	}
	return suma / float64(creditos), creditos
}

// GPA computes the cumulative credit-weighted average plus a
// per-semester breakdown.
func (s *gpaService) GPA(ctx context.Context, userID string) (*dto.GPAResponse, error) {
	conNota, err := s.gradedMaterias(ctx, userID)
	if err != nil {
		return nil, err
	}

	gpa, creditos := promedioPonderado(conNota)

	porSemestre := make(map[int][]materiaNota)
	for _, it := range conNota {
		porSemestre[it.materia.Semestre] = append(porSemestre[it.materia.Semestre], it)
	}
	semestres := make([]dto.SemesterGPAResponse, 0, len(porSemestre))
	for semestre, items := range porSemestre {
		g, c := promedioPonderado(items)
		semestres = append(semestres, dto.SemesterGPAResponse{Semestre: semestre, GPA: g, Creditos: c})
	}
	sort.Slice(semestres, func(i, j int) bool { return semestres[i].Semestre < semestres[j].Semestre })

	return &dto.GPAResponse{GPA: gpa, Creditos: creditos, Semestres: semestres}, nil
}

// Simulate projects the cumulative GPA with hypothetical final grades
// keyed by materia codigo. Hypotheticals replace the current grade of
// already-graded materias and add ungraded ones at full weight.
func (s *gpaService) Simulate(ctx context.Context, userID string, req *dto.SimulateGPARequest) (*dto.SimulateGPAResponse, error) {
	conNota, err := s.gradedMaterias(ctx, userID)
	if err != nil {
		return nil, err
	}
	actual, _ := promedioPonderado(conNota)

	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	porCodigo := make(map[string]model.Materia, len(materias))
	for _, m := range materias {
		porCodigo[m.Codigo] = m
	}

	simulado := make([]materiaNota, 0, len(conNota)+len(req.Notas))
	reemplazadas := make(map[string]bool, len(req.Notas))
	for _, it := range conNota {
		if nota, ok := req.Notas[it.materia.Codigo]; ok {
			simulado = append(simulado, materiaNota{materia: it.materia, nota: nota})
			reemplazadas[it.materia.Codigo] = true
			continue
		}
		simulado = append(simulado, it)
	}
	for codigo, nota := range req.Notas {
		if reemplazadas[codigo] {
			continue
		}
		m, ok := porCodigo[codigo]
		if !ok {
			return nil, ErrMateriaNotFound
		}
		simulado = append(simulado, materiaNota{materia: m, nota: nota})
	}

	proyectado, _ := promedioPonderado(simulado)
	return &dto.SimulateGPAResponse{
		GPAActual:   actual,
		GPASimulado: proyectado,
		Diferencia:  proyectado - actual,
	}, nil
}

// NeededGrade answers what grade the remaining percentage of a materia
// requires to finish at the user's minimum passing grade.
func (s *gpaService) NeededGrade(ctx context.Context, userID, materiaID string) (*dto.NeededGradeResponse, error) {
	if _, err := s.repo.Materia.GetByID(ctx, userID, materiaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}
	calificaciones, err := s.repo.Calificacion.ListByMateria(ctx, userID, materiaID)
	if err != nil {
		return nil, err
	}

	objetivo := s.notaMinima(ctx, userID)

	var acumulado, evaluado float64
	for _, c := range calificaciones {
		if c.Nota == nil {
			continue
		}
		acumulado += *c.Nota * c.Porcentaje / 100
		evaluado += c.Porcentaje
	}
	restante := 100 - evaluado

	resp := &dto.NeededGradeResponse{
		MateriaID:          materiaID,
		NotaObjetivo:       objetivo,
		PorcentajeRestante: restante,
	}
	if restante <= 0 {
		resp.Alcanzable = acumulado >= objetivo
		return resp, nil
	}

	necesaria := (objetivo - acumulado) / (restante / 100)
	if necesaria < 0 {
		necesaria = 0
	}
	resp.NotaNecesaria = necesaria
	resp.Alcanzable = necesaria <= notaMaxima
	return resp, nil
}

// Alerts flags enrolled materias currently below the minimum passing grade.
func (s *gpaService) Alerts(ctx context.Context, userID string) ([]dto.GradeAlertResponse, error) {
	materias, err := s.repo.Materia.ListByEstado(ctx, userID, model.EstadoInscrita)
	if err != nil {
		return nil, err
	}

	minima := s.notaMinima(ctx, userID)

	alertas := make([]dto.GradeAlertResponse, 0)
	for _, m := range materias {
		calificaciones, err := s.repo.Calificacion.ListByMateria(ctx, userID, m.ID)
		if err != nil {
			return nil, err
		}
		nota, evaluado := notaActual(calificaciones)
		if evaluado == 0 || nota >= minima {
			continue
		}
		alertas = append(alertas, dto.GradeAlertResponse{
			MateriaID:  m.ID,
			Codigo:     m.Codigo,
			Nombre:     m.Nombre,
			NotaActual: nota,
			Mensaje:    fmt.Sprintf("current grade %.2f is below the minimum %.2f", nota, minima),
		})
	}
	return alertas, nil
}

// AcademicProgress summarizes standing across the whole pensum: the
// cumulative GPA, credit progress, estado counts, active alerts, and
// the trend over the last two graded semesters.
func (s *gpaService) AcademicProgress(ctx context.Context, userID string) (*dto.AcademicProgressResponse, error) {
	gpa, err := s.GPA(ctx, userID)
	if err != nil {
		return nil, err
	}
	alertas, err := s.Alerts(ctx, userID)
	if err != nil {
		return nil, err
	}
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}

	porEstado := make(map[string]int, len(model.ValidEstados))
	for _, estado := range model.ValidEstados {
		porEstado[estado] = 0
	}
	var totales, aprobados int
	for _, m := range materias {
		porEstado[m.Estado]++
		totales += m.Creditos
		if m.Estado == model.EstadoAprobada {
			aprobados += m.Creditos
		}
	}
	var avance float64
	if totales > 0 {
		avance = float64(aprobados) / float64(totales) * 100
	}

	return &dto.AcademicProgressResponse{
		GPA:               gpa.GPA,
		CreditosAprobados: aprobados,
		CreditosTotales:   totales,
		PorcentajeAvance:  avance,
		MateriasPorEstado: porEstado,
		TotalMaterias:     len(materias),
		Alertas:           alertas,
		Tendencia:         tendencia(gpa.Semestres),
	}, nil
}

// tendencia compares the last two semester averages.
func tendencia(semestres []dto.SemesterGPAResponse) string {
	if len(semestres) < 2 {
		return "insufficient_data"
	}
	previo := semestres[len(semestres)-2].GPA
	ultimo := semestres[len(semestres)-1].GPA
	switch {
	case ultimo > previo+0.1:
		return "improving"
	case ultimo < previo-0.1:
		return "declining"
	default:
		return "stable"
	}
}

func (s *gpaService) notaMinima(ctx context.Context, userID string) float64 {
	cfg, err := s.repo.Configuracion.GetByUser(ctx, userID)
	if err != nil {
		return 3.0
	}
	return cfg.NotaMinima
}
