package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/model"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
)

// ── pensum module errors ──

var (
	ErrMateriaNotFound          = errors.New("materia not found")
	ErrMateriaDuplicada         = errors.New("a materia with that codigo already exists")
	ErrEstadoInvalido           = errors.New("invalid materia estado")
	ErrPrerequisitoNoExiste     = errors.New("prerequisite codigo not in pensum")
	ErrPrerequisitoCiclo        = errors.New("prerequisite graph would contain a cycle")
	ErrPrerequisitosIncompletos = errors.New("prerequisites not passed")
	ErrMovimientoInvalido       = errors.New("move would break prerequisite ordering")
	ErrTieneDependientes        = errors.New("other materias list this one as requisito")
)

// PensumService manages the user's pensum and its prerequisite graph.
type PensumService interface {
	CreateMateria(ctx context.Context, userID string, req *dto.CreateMateriaRequest) (*model.Materia, error)
	GetMateria(ctx context.Context, userID, id string) (*model.Materia, error)
	ListMaterias(ctx context.Context, userID string, estado string, semestre *int) ([]model.Materia, error)
	UpdateMateria(ctx context.Context, userID, id string, req *dto.UpdateMateriaRequest) (*model.Materia, error)
	UpdateEstado(ctx context.Context, userID, id string, req *dto.UpdateEstadoRequest) (*model.Materia, error)
	MoveMateria(ctx context.Context, userID, id string, semestre int) (*model.Materia, error)
	DeleteMateria(ctx context.Context, userID, id string) error
	SimulatePerdida(ctx context.Context, userID, codigo string) (*dto.SimulatePerdidaResponse, error)
	AvailableCourses(ctx context.Context, userID string, semestre int) ([]model.Materia, error)
	RefreshEstados(ctx context.Context, userID string) ([]model.Materia, error)
	CheckCreditos(ctx context.Context, userID string, semestre, creditos int) (*dto.CheckCreditosResponse, error)
	ValidateStructure(ctx context.Context, userID string) (*dto.PensumValidationResponse, error)
	Progress(ctx context.Context, userID string) (*dto.PensumProgressResponse, error)
}

type pensumService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPensumService creates a PensumService.
func NewPensumService(repo *repository.Repository, logger *zap.Logger) PensumService {
	return &pensumService{repo: repo, logger: logger}
}

func (s *pensumService) CreateMateria(ctx context.Context, userID string, req *dto.CreateMateriaRequest) (*model.Materia, error) {
	codigo := normalizarCodigo(req.Codigo)
	if _, err := s.repo.Materia.GetByCodigo(ctx, userID, codigo); err == nil {
		return nil, ErrMateriaDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	estado := req.Estado
	if estado == "" {
		estado = model.EstadoPendiente
	}
	if !model.IsValidEstado(estado) {
		return nil, ErrEstadoInvalido
	}

	materia := &model.Materia{
		UserID:        userID,
		Codigo:        codigo,
		Nombre:        req.Nombre,
		Creditos:      req.Creditos,
		Semestre:      req.Semestre,
		Estado:        estado,
		Color:         req.Color,
		Prerequisitos: normalizarCodigos(req.Prerequisitos),
		Corequisitos:  normalizarCodigos(req.Corequisitos),
	}

	if err := s.validateGraph(ctx, userID, materia); err != nil {
		return nil, err
	}
	if err := s.repo.Materia.Create(ctx, materia); err != nil {
		return nil, err
	}

	s.logger.Info("materia created",
		zap.String("user_id", userID),
		zap.String("codigo", materia.Codigo),
	)
	return materia, nil
}

func (s *pensumService) GetMateria(ctx context.Context, userID, id string) (*model.Materia, error) {
	materia, err := s.repo.Materia.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMateriaNotFound
		}
		return nil, err
	}
	return materia, nil
}

func (s *pensumService) ListMaterias(ctx context.Context, userID string, estado string, semestre *int) ([]model.Materia, error) {
	if estado != "" && !model.IsValidEstado(estado) {
		return nil, ErrEstadoInvalido
	}
	return s.repo.Materia.List(ctx, userID, estado, semestre)
}

func (s *pensumService) UpdateMateria(ctx context.Context, userID, id string, req *dto.UpdateMateriaRequest) (*model.Materia, error) {
	materia, err := s.GetMateria(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		materia.Nombre = *req.Nombre
	}
	if req.Creditos != nil {
		materia.Creditos = *req.Creditos
	}
	if req.Semestre != nil {
		materia.Semestre = *req.Semestre
	}
	if req.Color != nil {
		materia.Color = *req.Color
	}
	if req.Nota != nil {
		materia.Nota = req.Nota
	}
	if req.Prerequisitos != nil {
		materia.Prerequisitos = normalizarCodigos(*req.Prerequisitos)
	}
	if req.Corequisitos != nil {
		materia.Corequisitos = normalizarCodigos(*req.Corequisitos)
	}

	if err := s.validateGraph(ctx, userID, materia); err != nil {
		return nil, err
	}
	if err := s.repo.Materia.Update(ctx, materia); err != nil {
		return nil, err
	}
	return materia, nil
}

// UpdateEstado transitions a materia's academic standing, optionally
// recording the final grade. Enrolling requires every prerequisite
// passed and every corequisite at least enrolled in the same term.
func (s *pensumService) UpdateEstado(ctx context.Context, userID, id string, req *dto.UpdateEstadoRequest) (*model.Materia, error) {
	estado := req.Estado
	if !model.IsValidEstado(estado) {
		return nil, ErrEstadoInvalido
	}
	materia, err := s.GetMateria(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if estado == model.EstadoInscrita {
		porCodigo, err := s.indexByCodigo(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, pre := range materia.Prerequisitos {
			m, ok := porCodigo[pre]
			if !ok || m.Estado != model.EstadoAprobada {
				return nil, ErrPrerequisitosIncompletos
			}
		}
		for _, co := range materia.Corequisitos {
			m, ok := porCodigo[co]
			if !ok || (m.Estado != model.EstadoAprobada && m.Estado != model.EstadoInscrita) {
				return nil, ErrPrerequisitosIncompletos
			}
		}
	}

	materia.Estado = estado
	if req.Nota != nil {
		materia.Nota = req.Nota
	}
	if err := s.repo.Materia.Update(ctx, materia); err != nil {
		return nil, err
	}
	return materia, nil
}

// MoveMateria relocates a materia to another semester, keeping every
// prerequisite strictly earlier and every dependent strictly later.
func (s *pensumService) MoveMateria(ctx context.Context, userID, id string, semestre int) (*model.Materia, error) {
	materia, err := s.GetMateria(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	porCodigo, err := s.indexByCodigo(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, pre := range materia.Prerequisitos {
		if m, ok := porCodigo[pre]; ok && m.Semestre >= semestre {
			return nil, ErrMovimientoInvalido
		}
	}
	for _, m := range porCodigo {
		for _, pre := range m.Prerequisitos {
			if pre == materia.Codigo && m.Semestre <= semestre {
				return nil, ErrMovimientoInvalido
			}
		}
	}

	materia.Semestre = semestre
	if err := s.repo.Materia.Update(ctx, materia); err != nil {
		return nil, err
	}
	return materia, nil
}

func (s *pensumService) DeleteMateria(ctx context.Context, userID, id string) error {
	materia, err := s.GetMateria(ctx, userID, id)
	if err != nil {
		return err
	}

	// Removing a materia others require would leave dangling requisitos.
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return err
	}
	for i := range materias {
		m := &materias[i]
		if m.ID == materia.ID {
			continue
		}
		for _, pre := range m.Prerequisitos {
			if pre == materia.Codigo {
				return fmt.Errorf("%w: %s requires %s", ErrTieneDependientes, m.Codigo, materia.Codigo)
			}
		}
		for _, co := range m.Corequisitos {
			if co == materia.Codigo {
				return fmt.Errorf("%w: %s requires %s", ErrTieneDependientes, m.Codigo, materia.Codigo)
			}
		}
	}
	return s.repo.Materia.Delete(ctx, userID, id)
}

// SimulatePerdida walks the dependent closure of a materia to show what
// failing it would lock, and how many extra semesters the longest
// dependent chain implies.
func (s *pensumService) SimulatePerdida(ctx context.Context, userID, codigo string) (*dto.SimulatePerdidaResponse, error) {
	codigo = normalizarCodigo(codigo)
	porCodigo, err := s.indexByCodigo(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := porCodigo[codigo]; !ok {
		return nil, ErrMateriaNotFound
	}

	// dependents[a] = materias that list a as prerequisite
	dependents := make(map[string][]string)
	for _, m := range porCodigo {
		for _, pre := range m.Prerequisitos {
			dependents[pre] = append(dependents[pre], m.Codigo)
		}
	}

	afectadas := []string{}
	creditos := 0
	profundidad := map[string]int{codigo: 0}
	maxProfundidad := 0

	queue := []string{codigo}
	for len(queue) > 0 {
		actual := queue[0]
		queue = queue[1:]
		for _, dep := range dependents[actual] {
			if _, visto := profundidad[dep]; visto {
				continue
			}
			profundidad[dep] = profundidad[actual] + 1
			if profundidad[dep] > maxProfundidad {
				maxProfundidad = profundidad[dep]
			}
			afectadas = append(afectadas, dep)
			creditos += porCodigo[dep].Creditos
			queue = append(queue, dep)
		}
	}

	return &dto.SimulatePerdidaResponse{
		Codigo:            codigo,
		MateriasAfectadas: afectadas,
		CreditosAfectados: creditos,
		SemestresExtra:    maxProfundidad,
	}, nil
}

// AvailableCourses lists pending materias at or before the given
// semester whose prerequisites are passed and whose corequisites are
// passed or currently enrolled.
func (s *pensumService) AvailableCourses(ctx context.Context, userID string, semestre int) ([]model.Materia, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}

	aprobadas := make(map[string]bool)
	inscritas := make(map[string]bool)
	for _, m := range materias {
		switch m.Estado {
		case model.EstadoAprobada:
			aprobadas[m.Codigo] = true
		case model.EstadoInscrita:
			inscritas[m.Codigo] = true
		}
	}

	disponibles := []model.Materia{}
	for _, m := range materias {
		if m.Semestre > semestre {
			continue
		}
		if m.Estado != model.EstadoPendiente && m.Estado != model.EstadoBloqueada {
			continue
		}
		if esDisponible(&m, aprobadas, inscritas) {
			disponibles = append(disponibles, m)
		}
	}
	sort.Slice(disponibles, func(i, j int) bool {
		if disponibles[i].Semestre != disponibles[j].Semestre {
			return disponibles[i].Semestre < disponibles[j].Semestre
		}
		return disponibles[i].Codigo < disponibles[j].Codigo
	})
	return disponibles, nil
}

func esDisponible(m *model.Materia, aprobadas, inscritas map[string]bool) bool {
	for _, pre := range m.Prerequisitos {
		if !aprobadas[pre] {
			return false
		}
	}
	for _, co := range m.Corequisitos {
		if !aprobadas[co] && !inscritas[co] {
			return false
		}
	}
	return true
}

// RefreshEstados re-derives blocked and pending standings from the
// current prerequisite and corequisite fulfillment, persisting every
// change. Other estados are left alone.
func (s *pensumService) RefreshEstados(ctx context.Context, userID string) ([]model.Materia, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}

	aprobadas := make(map[string]bool)
	inscritas := make(map[string]bool)
	for _, m := range materias {
		switch m.Estado {
		case model.EstadoAprobada:
			aprobadas[m.Codigo] = true
		case model.EstadoInscrita:
			inscritas[m.Codigo] = true
		}
	}

	for i := range materias {
		m := &materias[i]
		if m.Estado != model.EstadoPendiente && m.Estado != model.EstadoBloqueada {
			continue
		}
		nuevo := model.EstadoBloqueada
		if esDisponible(m, aprobadas, inscritas) {
			nuevo = model.EstadoPendiente
		}
		if nuevo == m.Estado {
			continue
		}
		m.Estado = nuevo
		if err := s.repo.Materia.Update(ctx, m); err != nil {
			return nil, err
		}
	}
	return materias, nil
}

// CheckCreditos reports whether adding creditos to a semester keeps it
// under the user's configured per-semester maximum.
func (s *pensumService) CheckCreditos(ctx context.Context, userID string, semestre, creditos int) (*dto.CheckCreditosResponse, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", &semestre)
	if err != nil {
		return nil, err
	}

	maximos := 21
	cfg, err := s.repo.Configuracion.GetByUser(ctx, userID)
	if err == nil {
		maximos = cfg.CreditosMaximos
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	actuales := 0
	for _, m := range materias {
		actuales += m.Creditos
	}
	total := actuales + creditos

	exceso := 0
	if total > maximos {
		exceso = total - maximos
	}
	return &dto.CheckCreditosResponse{
		Permitido:        total <= maximos,
		CreditosActuales: actuales,
		NuevoTotal:       total,
		CreditosMaximos:  maximos,
		Exceso:           exceso,
	}, nil
}

// ValidateStructure audits the whole pensum: every prerequisito and
// corequisito must reference an existing materia, prerequisitos must sit in
// an earlier semester, and the prerequisite graph must stay acyclic. Unlike
// the per-change checks on create and update this also covers data written
// before those checks existed.
func (s *pensumService) ValidateStructure(ctx context.Context, userID string) (*dto.PensumValidationResponse, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}

	porCodigo := make(map[string]*model.Materia, len(materias))
	for i := range materias {
		porCodigo[materias[i].Codigo] = &materias[i]
	}

	errores := make([]string, 0)
	for i := range materias {
		m := &materias[i]
		for _, pre := range m.Prerequisitos {
			previa, ok := porCodigo[pre]
			if !ok {
				errores = append(errores, fmt.Sprintf("%s: prerequisite %q not in pensum", m.Codigo, pre))
				continue
			}
			if previa.Semestre >= m.Semestre {
				errores = append(errores, fmt.Sprintf(
					"%s: prerequisite %q must be in an earlier semester (semestre %d vs %d)",
					m.Codigo, pre, previa.Semestre, m.Semestre))
			}
		}
		for _, co := range m.Corequisitos {
			if _, ok := porCodigo[co]; !ok {
				errores = append(errores, fmt.Sprintf("%s: corequisite %q not in pensum", m.Codigo, co))
			}
		}
	}
	if ciclo := detectarCiclo(materias, porCodigo); len(ciclo) > 0 {
		errores = append(errores, "circular dependency: "+strings.Join(ciclo, " -> "))
	}

	return &dto.PensumValidationResponse{Valida: len(errores) == 0, Errores: errores}, nil
}

// detectarCiclo walks the prerequisite graph depth first and returns the
// first cycle found as a codigo path closed on itself, or nil.
func detectarCiclo(materias []model.Materia, porCodigo map[string]*model.Materia) []string {
	const (
		sinVisitar = iota
		enPila
		cerrado
	)
	estado := make(map[string]int, len(porCodigo))

	var camino []string
	var visitar func(codigo string) []string
	visitar = func(codigo string) []string {
		estado[codigo] = enPila
		camino = append(camino, codigo)
		for _, pre := range porCodigo[codigo].Prerequisitos {
			if _, ok := porCodigo[pre]; !ok {
				continue
			}
			switch estado[pre] {
			case sinVisitar:
				if ciclo := visitar(pre); ciclo != nil {
					return ciclo
				}
			case enPila:
				for i, c := range camino {
					if c == pre {
						return append(camino[i:len(camino):len(camino)], pre)
					}
				}
			}
		}
		estado[codigo] = cerrado
		camino = camino[:len(camino)-1]
		return nil
	}

	for i := range materias {
		if estado[materias[i].Codigo] == sinVisitar {
			if ciclo := visitar(materias[i].Codigo); ciclo != nil {
				return ciclo
			}
		}
	}
	return nil
}

func (s *pensumService) Progress(ctx context.Context, userID string) (*dto.PensumProgressResponse, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}

	var totales, aprobados, inscritos int
	for _, m := range materias {
		totales += m.Creditos
		switch m.Estado {
		case model.EstadoAprobada:
			aprobados += m.Creditos
		case model.EstadoInscrita:
			inscritos += m.Creditos
		}
	}

	var avance float64
	if totales > 0 {
		avance = float64(aprobados) / float64(totales) * 100
	}
	return &dto.PensumProgressResponse{
		CreditosTotales:   totales,
		CreditosAprobados: aprobados,
		CreditosInscritos: inscritos,
		PorcentajeAvance:  avance,
	}, nil
}

func (s *pensumService) indexByCodigo(ctx context.Context, userID string) (map[string]*model.Materia, error) {
	materias, err := s.repo.Materia.List(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	porCodigo := make(map[string]*model.Materia, len(materias))
	for i := range materias {
		porCodigo[materias[i].Codigo] = &materias[i]
	}
	return porCodigo, nil
}

// Codigos are stored uppercased so lookups and the unique index are
// case-insensitive in practice.
func normalizarCodigo(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

func normalizarCodigos(codigos []string) model.StringList {
	out := make(model.StringList, len(codigos))
	for i, c := range codigos {
		out[i] = normalizarCodigo(c)
	}
	return out
}

// validateGraph checks that the materia's prerequisites exist in the
// pensum and that adding its edges keeps the graph acyclic, using
// Kahn's algorithm over the whole pensum plus the pending change.
func (s *pensumService) validateGraph(ctx context.Context, userID string, cambio *model.Materia) error {
	porCodigo, err := s.indexByCodigo(ctx, userID)
	if err != nil {
		return err
	}
	porCodigo[cambio.Codigo] = cambio

	for _, pre := range cambio.Prerequisitos {
		if _, ok := porCodigo[pre]; !ok {
			return ErrPrerequisitoNoExiste
		}
		if pre == cambio.Codigo {
			return ErrPrerequisitoCiclo
		}
	}

	// edges: prerequisite -> dependent
	gradoEntrada := make(map[string]int, len(porCodigo))
	adyacentes := make(map[string][]string, len(porCodigo))
	for codigo := range porCodigo {
		gradoEntrada[codigo] = 0
	}
	for codigo, m := range porCodigo {
		for _, pre := range m.Prerequisitos {
			if _, ok := porCodigo[pre]; !ok {
				continue
			}
			adyacentes[pre] = append(adyacentes[pre], codigo)
			gradoEntrada[codigo]++
		}
	}

	queue := make([]string, 0, len(porCodigo))
	for codigo, grado := range gradoEntrada {
		if grado == 0 {
			queue = append(queue, codigo)
		}
	}

	procesados := 0
	for len(queue) > 0 {
		actual := queue[0]
		queue = queue[1:]
		procesados++
		for _, dep := range adyacentes[actual] {
			gradoEntrada[dep]--
			if gradoEntrada[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if procesados != len(porCodigo) {
		return ErrPrerequisitoCiclo
	}
	return nil
}
