package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Samu-Kiss/Uni-App/internal/model"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
)

// ── mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

// ── mock MateriaRepository ──

type mockMateriaRepo struct {
	materias map[string]*model.Materia
}

func newMockMateriaRepo() *mockMateriaRepo {
	return &mockMateriaRepo{materias: make(map[string]*model.Materia)}
}

func (m *mockMateriaRepo) Create(_ context.Context, materia *model.Materia) error {
	if materia.ID == "" {
		materia.ID = "mat-" + materia.Codigo
	}
	m.materias[materia.ID] = materia
	return nil
}

func (m *mockMateriaRepo) GetByID(_ context.Context, userID, id string) (*model.Materia, error) {
	if mt, ok := m.materias[id]; ok && mt.UserID == userID {
		return mt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMateriaRepo) GetByCodigo(_ context.Context, userID, codigo string) (*model.Materia, error) {
	for _, mt := range m.materias {
		if mt.UserID == userID && mt.Codigo == codigo {
			return mt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMateriaRepo) List(_ context.Context, userID string, estado string, semestre *int) ([]model.Materia, error) {
	var result []model.Materia
	for _, mt := range m.materias {
		if mt.UserID != userID {
			continue
		}
		if estado != "" && mt.Estado != estado {
			continue
		}
		if semestre != nil && mt.Semestre != *semestre {
			continue
		}
		result = append(result, *mt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Codigo < result[j].Codigo })
	return result, nil
}

func (m *mockMateriaRepo) ListByEstado(ctx context.Context, userID, estado string) ([]model.Materia, error) {
	return m.List(ctx, userID, estado, nil)
}

func (m *mockMateriaRepo) Update(_ context.Context, materia *model.Materia) error {
	m.materias[materia.ID] = materia
	return nil
}

func (m *mockMateriaRepo) Delete(_ context.Context, userID, id string) error {
	if mt, ok := m.materias[id]; ok && mt.UserID == userID {
		delete(m.materias, id)
	}
	return nil
}

// ── mock ClaseRepository ──

type mockClaseRepo struct {
	clases   map[string]*model.Clase
	materias *mockMateriaRepo // for Preload("Materia") semantics
}

func newMockClaseRepo(materias *mockMateriaRepo) *mockClaseRepo {
	return &mockClaseRepo{clases: make(map[string]*model.Clase), materias: materias}
}

func (m *mockClaseRepo) withMateria(c *model.Clase) *model.Clase {
	out := *c
	if m.materias != nil {
		if mt, ok := m.materias.materias[c.MateriaID]; ok {
			out.Materia = mt
		}
	}
	return &out
}

func (m *mockClaseRepo) Create(_ context.Context, clase *model.Clase) error {
	if clase.ID == "" {
		clase.ID = "clase-" + clase.NRC
	}
	for _, c := range m.clases {
		if c.UserID == clase.UserID && c.NRC == clase.NRC {
			return gorm.ErrDuplicatedKey
		}
	}
	m.clases[clase.ID] = clase
	return nil
}

func (m *mockClaseRepo) GetByID(_ context.Context, userID, id string) (*model.Clase, error) {
	if c, ok := m.clases[id]; ok && c.UserID == userID {
		return m.withMateria(c), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClaseRepo) ListByMateria(_ context.Context, userID, materiaID string) ([]model.Clase, error) {
	var result []model.Clase
	for _, c := range m.clases {
		if c.UserID == userID && c.MateriaID == materiaID {
			result = append(result, *m.withMateria(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NRC < result[j].NRC })
	return result, nil
}

func (m *mockClaseRepo) ListByMaterias(_ context.Context, userID string, materiaIDs []string) ([]model.Clase, error) {
	wanted := make(map[string]bool, len(materiaIDs))
	for _, id := range materiaIDs {
		wanted[id] = true
	}
	var result []model.Clase
	for _, c := range m.clases {
		if c.UserID == userID && wanted[c.MateriaID] {
			result = append(result, *m.withMateria(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NRC < result[j].NRC })
	return result, nil
}

func (m *mockClaseRepo) Update(_ context.Context, clase *model.Clase) error {
	m.clases[clase.ID] = clase
	return nil
}

func (m *mockClaseRepo) Delete(_ context.Context, userID, id string) error {
	if c, ok := m.clases[id]; ok && c.UserID == userID {
		delete(m.clases, id)
	}
	return nil
}

// ── mock FranjaRepository ──

type mockFranjaRepo struct {
	franjas map[string]*model.Franja
}

func newMockFranjaRepo() *mockFranjaRepo {
	return &mockFranjaRepo{franjas: make(map[string]*model.Franja)}
}

func (m *mockFranjaRepo) Create(_ context.Context, franja *model.Franja) error {
	if franja.ID == "" {
		franja.ID = fmt.Sprintf("franja-%d", len(m.franjas)+1)
	}
	m.franjas[franja.ID] = franja
	return nil
}

func (m *mockFranjaRepo) GetByID(_ context.Context, userID, id string) (*model.Franja, error) {
	if f, ok := m.franjas[id]; ok && f.UserID == userID {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFranjaRepo) List(_ context.Context, userID string, tipo string) ([]model.Franja, error) {
	var result []model.Franja
	for _, f := range m.franjas {
		if f.UserID != userID {
			continue
		}
		if tipo != "" && f.Tipo != tipo {
			continue
		}
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Dia != result[j].Dia {
			return result[i].Dia < result[j].Dia
		}
		return result[i].HoraInicio < result[j].HoraInicio
	})
	return result, nil
}

func (m *mockFranjaRepo) Update(_ context.Context, franja *model.Franja) error {
	m.franjas[franja.ID] = franja
	return nil
}

func (m *mockFranjaRepo) Delete(_ context.Context, userID, id string) error {
	if f, ok := m.franjas[id]; ok && f.UserID == userID {
		delete(m.franjas, id)
	}
	return nil
}

// ── mock HorarioRepository ──

type mockHorarioRepo struct {
	horarios map[string]*model.HorarioSeleccionado
	seq      int
}

func newMockHorarioRepo() *mockHorarioRepo {
	return &mockHorarioRepo{horarios: make(map[string]*model.HorarioSeleccionado)}
}

func (m *mockHorarioRepo) Create(_ context.Context, horario *model.HorarioSeleccionado) error {
	if horario.ID == "" {
		m.seq++
		horario.ID = fmt.Sprintf("horario-%d", m.seq)
	}
	m.horarios[horario.ID] = horario
	return nil
}

func (m *mockHorarioRepo) GetByID(_ context.Context, userID, id string) (*model.HorarioSeleccionado, error) {
	if h, ok := m.horarios[id]; ok && h.UserID == userID {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHorarioRepo) GetActive(_ context.Context, userID string) (*model.HorarioSeleccionado, error) {
	for _, h := range m.horarios {
		if h.UserID == userID && h.Activo {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHorarioRepo) List(_ context.Context, userID string) ([]model.HorarioSeleccionado, error) {
	var result []model.HorarioSeleccionado
	for _, h := range m.horarios {
		if h.UserID == userID {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (m *mockHorarioRepo) DeactivateAll(_ context.Context, userID string) error {
	for _, h := range m.horarios {
		if h.UserID == userID {
			h.Activo = false
		}
	}
	return nil
}

func (m *mockHorarioRepo) Delete(_ context.Context, userID, id string) error {
	if h, ok := m.horarios[id]; ok && h.UserID == userID {
		delete(m.horarios, id)
	}
	return nil
}

// ── mock ConfiguracionRepository ──

type mockConfiguracionRepo struct {
	configs map[string]*model.Configuracion // keyed by user ID
}

func newMockConfiguracionRepo() *mockConfiguracionRepo {
	return &mockConfiguracionRepo{configs: make(map[string]*model.Configuracion)}
}

func (m *mockConfiguracionRepo) GetByUser(_ context.Context, userID string) (*model.Configuracion, error) {
	if c, ok := m.configs[userID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfiguracionRepo) Upsert(_ context.Context, cfg *model.Configuracion) error {
	m.configs[cfg.UserID] = cfg
	return nil
}

// ── mock CalificacionRepository ──

type mockCalificacionRepo struct {
	calificaciones map[string]*model.Calificacion
	seq            int
}

func newMockCalificacionRepo() *mockCalificacionRepo {
	return &mockCalificacionRepo{calificaciones: make(map[string]*model.Calificacion)}
}

func (m *mockCalificacionRepo) Create(_ context.Context, c *model.Calificacion) error {
	if c.ID == "" {
		m.seq++
		c.ID = fmt.Sprintf("calif-%d", m.seq)
	}
	m.calificaciones[c.ID] = c
	return nil
}

func (m *mockCalificacionRepo) GetByID(_ context.Context, userID, id string) (*model.Calificacion, error) {
	if c, ok := m.calificaciones[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalificacionRepo) ListByMateria(_ context.Context, userID, materiaID string) ([]model.Calificacion, error) {
	var result []model.Calificacion
	for _, c := range m.calificaciones {
		if c.UserID == userID && c.MateriaID == materiaID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCalificacionRepo) Update(_ context.Context, c *model.Calificacion) error {
	m.calificaciones[c.ID] = c
	return nil
}

func (m *mockCalificacionRepo) Delete(_ context.Context, userID, id string) error {
	if c, ok := m.calificaciones[id]; ok && c.UserID == userID {
		delete(m.calificaciones, id)
	}
	return nil
}

// ── aggregate builder ──

type testRepos struct {
	users          *mockUserRepo
	materias       *mockMateriaRepo
	clases         *mockClaseRepo
	franjas        *mockFranjaRepo
	horarios       *mockHorarioRepo
	configuracion  *mockConfiguracionRepo
	calificaciones *mockCalificacionRepo
}

func newTestRepos() (*testRepos, *repository.Repository) {
	materias := newMockMateriaRepo()
	mocks := &testRepos{
		users:          newMockUserRepo(),
		materias:       materias,
		clases:         newMockClaseRepo(materias),
		franjas:        newMockFranjaRepo(),
		horarios:       newMockHorarioRepo(),
		configuracion:  newMockConfiguracionRepo(),
		calificaciones: newMockCalificacionRepo(),
	}
	repo := &repository.Repository{
		User:          mocks.users,
		Materia:       mocks.materias,
		Clase:         mocks.clases,
		Franja:        mocks.franjas,
		Horario:       mocks.horarios,
		Configuracion: mocks.configuracion,
		Calificacion:  mocks.calificaciones,
	}
	return mocks, repo
}
