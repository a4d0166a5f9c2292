package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Samu-Kiss/Uni-App/internal/dto"
	"github.com/Samu-Kiss/Uni-App/internal/model"
)

func newPensumTest(t *testing.T) (*testRepos, PensumService) {
	t.Helper()
	mocks, repo := newTestRepos()
	return mocks, NewPensumService(repo, zap.NewNop())
}

func seedPensum(t *testing.T, mocks *testRepos, codigo string, semestre, creditos int, estado string, prereqs ...string) *model.Materia {
	t.Helper()
	m := &model.Materia{
		UserID:        testUserID,
		Codigo:        codigo,
		Nombre:        "Materia " + codigo,
		Creditos:      creditos,
		Semestre:      semestre,
		Estado:        estado,
		Prerequisitos: model.StringList(prereqs),
		Corequisitos:  model.StringList{},
	}
	if m.Prerequisitos == nil {
		m.Prerequisitos = model.StringList{}
	}
	if err := mocks.materias.Create(context.Background(), m); err != nil {
		t.Fatalf("seed materia %s: %v", codigo, err)
	}
	return m
}

// ── create ──

func TestPensumService_CreateMateria(t *testing.T) {
	_, svc := newPensumTest(t)

	materia, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:   "MAT101",
		Nombre:   "Cálculo I",
		Creditos: 4,
		Semestre: 1,
	})
	if err != nil {
		t.Fatalf("CreateMateria: %v", err)
	}
	if materia.Estado != model.EstadoPendiente {
		t.Errorf("expected default estado pending, got %s", materia.Estado)
	}
	if materia.Prerequisitos == nil || materia.Corequisitos == nil {
		t.Error("nil requisito lists must be normalized to empty")
	}
}

func TestPensumService_CreateMateriaNormalizesCodigos(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)

	materia, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:        " mat201 ",
		Nombre:        "Cálculo II",
		Creditos:      4,
		Semestre:      2,
		Prerequisitos: []string{"mat101"},
	})
	if err != nil {
		t.Fatalf("CreateMateria: %v", err)
	}
	if materia.Codigo != "MAT201" {
		t.Errorf("expected uppercased codigo, got %q", materia.Codigo)
	}
	if materia.Prerequisitos[0] != "MAT101" {
		t.Errorf("expected uppercased prerequisito, got %q", materia.Prerequisitos[0])
	}

	// The lowercase spelling collides with the stored uppercase one.
	_, err = svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:   "mat101",
		Nombre:   "Cálculo I bis",
		Creditos: 4,
		Semestre: 1,
	})
	if !errors.Is(err, ErrMateriaDuplicada) {
		t.Fatalf("expected ErrMateriaDuplicada, got %v", err)
	}
}

func TestPensumService_CreateMateriaDuplicada(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)

	_, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:   "MAT101",
		Nombre:   "Cálculo I",
		Semestre: 1,
	})
	if !errors.Is(err, ErrMateriaDuplicada) {
		t.Fatalf("expected ErrMateriaDuplicada, got %v", err)
	}
}

func TestPensumService_CreateMateriaEstadoInvalido(t *testing.T) {
	_, svc := newPensumTest(t)

	_, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:   "MAT101",
		Nombre:   "Cálculo I",
		Semestre: 1,
		Estado:   "graduated",
	})
	if !errors.Is(err, ErrEstadoInvalido) {
		t.Fatalf("expected ErrEstadoInvalido, got %v", err)
	}
}

func TestPensumService_CreateMateriaUnknownPrerequisite(t *testing.T) {
	_, svc := newPensumTest(t)

	_, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:        "MAT201",
		Nombre:        "Cálculo II",
		Semestre:      2,
		Prerequisitos: []string{"MAT101"},
	})
	if !errors.Is(err, ErrPrerequisitoNoExiste) {
		t.Fatalf("expected ErrPrerequisitoNoExiste, got %v", err)
	}
}

func TestPensumService_CreateMateriaSelfPrerequisite(t *testing.T) {
	_, svc := newPensumTest(t)

	_, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:        "MAT101",
		Nombre:        "Cálculo I",
		Semestre:      1,
		Prerequisitos: []string{"MAT101"},
	})
	if !errors.Is(err, ErrPrerequisitoCiclo) {
		t.Fatalf("expected ErrPrerequisitoCiclo, got %v", err)
	}
}

func TestPensumService_UpdateMateriaCycle(t *testing.T) {
	mocks, svc := newPensumTest(t)
	a := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")
	seedPensum(t, mocks, "MAT301", 3, 4, model.EstadoPendiente, "MAT201")

	// Closing MAT101 -> MAT201 -> MAT301 -> MAT101 must be rejected.
	prereqs := []string{"MAT301"}
	_, err := svc.UpdateMateria(context.Background(), testUserID, a.ID, &dto.UpdateMateriaRequest{
		Prerequisitos: &prereqs,
	})
	if !errors.Is(err, ErrPrerequisitoCiclo) {
		t.Fatalf("expected ErrPrerequisitoCiclo, got %v", err)
	}
}

func TestPensumService_UpdateMateriaPartial(t *testing.T) {
	mocks, svc := newPensumTest(t)
	m := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)

	creditos := 5
	updated, err := svc.UpdateMateria(context.Background(), testUserID, m.ID, &dto.UpdateMateriaRequest{
		Creditos: &creditos,
	})
	if err != nil {
		t.Fatalf("UpdateMateria: %v", err)
	}
	if updated.Creditos != 5 {
		t.Errorf("expected creditos 5, got %d", updated.Creditos)
	}
	if updated.Nombre != "Materia MAT101" {
		t.Errorf("nil field must stay unchanged, got %s", updated.Nombre)
	}
}

func TestPensumService_MateriaColorAndNota(t *testing.T) {
	_, svc := newPensumTest(t)

	materia, err := svc.CreateMateria(context.Background(), testUserID, &dto.CreateMateriaRequest{
		Codigo:   "MAT101",
		Nombre:   "Cálculo I",
		Creditos: 4,
		Semestre: 1,
		Color:    "#3B82F6",
	})
	if err != nil {
		t.Fatalf("CreateMateria: %v", err)
	}
	if materia.Color != "#3B82F6" {
		t.Errorf("expected color stored, got %q", materia.Color)
	}
	if materia.Nota != nil {
		t.Errorf("new materia must have no grade, got %v", materia.Nota)
	}

	color := "#EF4444"
	nota := 3.8
	updated, err := svc.UpdateMateria(context.Background(), testUserID, materia.ID, &dto.UpdateMateriaRequest{
		Color: &color,
		Nota:  &nota,
	})
	if err != nil {
		t.Fatalf("UpdateMateria: %v", err)
	}
	if updated.Color != "#EF4444" {
		t.Errorf("expected updated color, got %q", updated.Color)
	}
	if updated.Nota == nil || *updated.Nota != 3.8 {
		t.Errorf("expected nota 3.8, got %v", updated.Nota)
	}
}

// ── estado transitions ──

func TestPensumService_UpdateEstadoEnrollGate(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)
	m := seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")

	_, err := svc.UpdateEstado(context.Background(), testUserID, m.ID, &dto.UpdateEstadoRequest{Estado: model.EstadoInscrita})
	if !errors.Is(err, ErrPrerequisitosIncompletos) {
		t.Fatalf("expected ErrPrerequisitosIncompletos, got %v", err)
	}
}

func TestPensumService_UpdateEstadoEnrollAfterPassing(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	m := seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")

	updated, err := svc.UpdateEstado(context.Background(), testUserID, m.ID, &dto.UpdateEstadoRequest{Estado: model.EstadoInscrita})
	if err != nil {
		t.Fatalf("UpdateEstado: %v", err)
	}
	if updated.Estado != model.EstadoInscrita {
		t.Errorf("expected enrolled, got %s", updated.Estado)
	}
}

func TestPensumService_UpdateEstadoCorequisite(t *testing.T) {
	mocks, svc := newPensumTest(t)
	lab := seedPensum(t, mocks, "FIS101L", 1, 1, model.EstadoPendiente)
	teoria := seedPensum(t, mocks, "FIS101", 1, 3, model.EstadoPendiente)
	teoria.Corequisitos = model.StringList{"FIS101L"}
	if err := mocks.materias.Update(context.Background(), teoria); err != nil {
		t.Fatalf("seed corequisito: %v", err)
	}

	// Corequisite still pending: enrollment blocked.
	if _, err := svc.UpdateEstado(context.Background(), testUserID, teoria.ID, &dto.UpdateEstadoRequest{Estado: model.EstadoInscrita}); !errors.Is(err, ErrPrerequisitosIncompletos) {
		t.Fatalf("expected ErrPrerequisitosIncompletos, got %v", err)
	}

	// Enrolling the corequisite in the same term unblocks it.
	if _, err := svc.UpdateEstado(context.Background(), testUserID, lab.ID, &dto.UpdateEstadoRequest{Estado: model.EstadoInscrita}); err != nil {
		t.Fatalf("enroll lab: %v", err)
	}
	if _, err := svc.UpdateEstado(context.Background(), testUserID, teoria.ID, &dto.UpdateEstadoRequest{Estado: model.EstadoInscrita}); err != nil {
		t.Fatalf("enroll teoria: %v", err)
	}
}

func TestPensumService_UpdateEstadoInvalido(t *testing.T) {
	mocks, svc := newPensumTest(t)
	m := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)

	_, err := svc.UpdateEstado(context.Background(), testUserID, m.ID, &dto.UpdateEstadoRequest{Estado: "graduated"})
	if !errors.Is(err, ErrEstadoInvalido) {
		t.Fatalf("expected ErrEstadoInvalido, got %v", err)
	}
}

func TestPensumService_UpdateEstadoRecordsNota(t *testing.T) {
	mocks, svc := newPensumTest(t)
	m := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoInscrita)

	nota := 4.2
	updated, err := svc.UpdateEstado(context.Background(), testUserID, m.ID, &dto.UpdateEstadoRequest{
		Estado: model.EstadoAprobada,
		Nota:   &nota,
	})
	if err != nil {
		t.Fatalf("UpdateEstado: %v", err)
	}
	if updated.Estado != model.EstadoAprobada {
		t.Errorf("expected passed, got %s", updated.Estado)
	}
	if updated.Nota == nil || *updated.Nota != 4.2 {
		t.Errorf("expected nota 4.2 recorded, got %v", updated.Nota)
	}

	stored, err := mocks.materias.GetByCodigo(context.Background(), testUserID, "MAT101")
	if err != nil {
		t.Fatalf("stored lookup: %v", err)
	}
	if stored.Nota == nil || *stored.Nota != 4.2 {
		t.Errorf("nota not persisted, got %v", stored.Nota)
	}
}

// ── moves ──

func TestPensumService_MoveMateria(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	m := seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")

	moved, err := svc.MoveMateria(context.Background(), testUserID, m.ID, 4)
	if err != nil {
		t.Fatalf("MoveMateria: %v", err)
	}
	if moved.Semestre != 4 {
		t.Errorf("expected semestre 4, got %d", moved.Semestre)
	}
}

func TestPensumService_MoveMateriaBeforePrerequisite(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 2, 4, model.EstadoPendiente)
	m := seedPensum(t, mocks, "MAT201", 3, 4, model.EstadoPendiente, "MAT101")

	// Same semester as the prerequisite is also invalid.
	if _, err := svc.MoveMateria(context.Background(), testUserID, m.ID, 2); !errors.Is(err, ErrMovimientoInvalido) {
		t.Fatalf("expected ErrMovimientoInvalido, got %v", err)
	}
	if _, err := svc.MoveMateria(context.Background(), testUserID, m.ID, 1); !errors.Is(err, ErrMovimientoInvalido) {
		t.Fatalf("expected ErrMovimientoInvalido, got %v", err)
	}
}

func TestPensumService_MoveMateriaPastDependent(t *testing.T) {
	mocks, svc := newPensumTest(t)
	m := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)
	seedPensum(t, mocks, "MAT201", 3, 4, model.EstadoPendiente, "MAT101")

	if _, err := svc.MoveMateria(context.Background(), testUserID, m.ID, 3); !errors.Is(err, ErrMovimientoInvalido) {
		t.Fatalf("expected ErrMovimientoInvalido, got %v", err)
	}
	if _, err := svc.MoveMateria(context.Background(), testUserID, m.ID, 2); err != nil {
		t.Fatalf("move to an earlier free semester must work: %v", err)
	}
}

// ── simulation and progress ──

func TestPensumService_SimulatePerdida(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoInscrita)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")
	seedPensum(t, mocks, "FIS201", 2, 3, model.EstadoPendiente, "MAT101")
	seedPensum(t, mocks, "MAT301", 3, 4, model.EstadoPendiente, "MAT201")
	seedPensum(t, mocks, "HUM101", 1, 2, model.EstadoPendiente)

	resp, err := svc.SimulatePerdida(context.Background(), testUserID, "MAT101")
	if err != nil {
		t.Fatalf("SimulatePerdida: %v", err)
	}
	sort.Strings(resp.MateriasAfectadas)
	want := []string{"FIS201", "MAT201", "MAT301"}
	if len(resp.MateriasAfectadas) != len(want) {
		t.Fatalf("expected %v, got %v", want, resp.MateriasAfectadas)
	}
	for i, w := range want {
		if resp.MateriasAfectadas[i] != w {
			t.Errorf("expected %v, got %v", want, resp.MateriasAfectadas)
			break
		}
	}
	if resp.CreditosAfectados != 11 {
		t.Errorf("expected 11 affected credits, got %d", resp.CreditosAfectados)
	}
	// MAT101 -> MAT201 -> MAT301 is the longest dependent chain.
	if resp.SemestresExtra != 2 {
		t.Errorf("expected 2 extra semesters, got %d", resp.SemestresExtra)
	}
}

func TestPensumService_SimulatePerdidaLeaf(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "HUM101", 1, 2, model.EstadoInscrita)

	resp, err := svc.SimulatePerdida(context.Background(), testUserID, "HUM101")
	if err != nil {
		t.Fatalf("SimulatePerdida: %v", err)
	}
	if len(resp.MateriasAfectadas) != 0 || resp.CreditosAfectados != 0 || resp.SemestresExtra != 0 {
		t.Errorf("a leaf materia affects nothing: %+v", resp)
	}
}

func TestPensumService_SimulatePerdidaUnknown(t *testing.T) {
	_, svc := newPensumTest(t)

	_, err := svc.SimulatePerdida(context.Background(), testUserID, "MAT999")
	if !errors.Is(err, ErrMateriaNotFound) {
		t.Fatalf("expected ErrMateriaNotFound, got %v", err)
	}
}

func TestPensumService_Progress(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	seedPensum(t, mocks, "FIS101", 1, 3, model.EstadoAprobada)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoInscrita)
	seedPensum(t, mocks, "HUM101", 1, 2, model.EstadoPendiente)

	resp, err := svc.Progress(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if resp.CreditosTotales != 13 {
		t.Errorf("expected 13 total credits, got %d", resp.CreditosTotales)
	}
	if resp.CreditosAprobados != 7 {
		t.Errorf("expected 7 passed credits, got %d", resp.CreditosAprobados)
	}
	if resp.CreditosInscritos != 4 {
		t.Errorf("expected 4 enrolled credits, got %d", resp.CreditosInscritos)
	}
	want := float64(7) / 13 * 100
	if resp.PorcentajeAvance != want {
		t.Errorf("expected avance %.4f, got %.4f", want, resp.PorcentajeAvance)
	}
}

func TestPensumService_ProgressEmpty(t *testing.T) {
	_, svc := newPensumTest(t)

	resp, err := svc.Progress(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if resp.PorcentajeAvance != 0 {
		t.Errorf("empty pensum must report 0%% progress, got %.2f", resp.PorcentajeAvance)
	}
}

func TestPensumService_DeleteMateria(t *testing.T) {
	mocks, svc := newPensumTest(t)
	m := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoPendiente)

	if err := svc.DeleteMateria(context.Background(), testUserID, m.ID); err != nil {
		t.Fatalf("DeleteMateria: %v", err)
	}
	if err := svc.DeleteMateria(context.Background(), testUserID, m.ID); !errors.Is(err, ErrMateriaNotFound) {
		t.Fatalf("expected ErrMateriaNotFound, got %v", err)
	}
}

func TestPensumService_DeleteMateriaWithDependents(t *testing.T) {
	mocks, svc := newPensumTest(t)
	base := seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	dep := seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")

	err := svc.DeleteMateria(context.Background(), testUserID, base.ID)
	if !errors.Is(err, ErrTieneDependientes) {
		t.Fatalf("expected ErrTieneDependientes, got %v", err)
	}
	if _, err := mocks.materias.GetByCodigo(context.Background(), testUserID, "MAT101"); err != nil {
		t.Fatalf("materia must survive a refused delete: %v", err)
	}

	// Once the dependent is gone the delete goes through.
	if err := svc.DeleteMateria(context.Background(), testUserID, dep.ID); err != nil {
		t.Fatalf("DeleteMateria dependent: %v", err)
	}
	if err := svc.DeleteMateria(context.Background(), testUserID, base.ID); err != nil {
		t.Fatalf("DeleteMateria after dependent removed: %v", err)
	}
}

func TestPensumService_DeleteMateriaWithCorequisiteDependent(t *testing.T) {
	mocks, svc := newPensumTest(t)
	base := seedPensum(t, mocks, "QUI101", 1, 3, model.EstadoPendiente)
	lab := &model.Materia{
		UserID:        testUserID,
		Codigo:        "LAB101",
		Nombre:        "Laboratorio",
		Creditos:      1,
		Semestre:      1,
		Estado:        model.EstadoPendiente,
		Prerequisitos: model.StringList{},
		Corequisitos:  model.StringList{"QUI101"},
	}
	if err := mocks.materias.Create(context.Background(), lab); err != nil {
		t.Fatalf("seed materia: %v", err)
	}

	if err := svc.DeleteMateria(context.Background(), testUserID, base.ID); !errors.Is(err, ErrTieneDependientes) {
		t.Fatalf("expected ErrTieneDependientes, got %v", err)
	}
}

func TestPensumService_ListMateriasFilters(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente)

	materias, err := svc.ListMaterias(context.Background(), testUserID, model.EstadoAprobada, nil)
	if err != nil {
		t.Fatalf("ListMaterias: %v", err)
	}
	if len(materias) != 1 || materias[0].Codigo != "MAT101" {
		t.Errorf("estado filter failed: %+v", materias)
	}

	semestre := 2
	materias, err = svc.ListMaterias(context.Background(), testUserID, "", &semestre)
	if err != nil {
		t.Fatalf("ListMaterias: %v", err)
	}
	if len(materias) != 1 || materias[0].Codigo != "MAT201" {
		t.Errorf("semestre filter failed: %+v", materias)
	}

	if _, err := svc.ListMaterias(context.Background(), testUserID, "bogus", nil); !errors.Is(err, ErrEstadoInvalido) {
		t.Fatalf("expected ErrEstadoInvalido, got %v", err)
	}
}

// ── available courses ──

func TestPensumService_AvailableCourses(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	seedPensum(t, mocks, "QUI101", 1, 3, model.EstadoPendiente)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")
	seedPensum(t, mocks, "FIS201", 2, 4, model.EstadoPendiente, "QUI101")
	seedPensum(t, mocks, "MAT301", 3, 4, model.EstadoPendiente, "MAT201")

	disponibles, err := svc.AvailableCourses(context.Background(), testUserID, 2)
	if err != nil {
		t.Fatalf("AvailableCourses: %v", err)
	}

	codigos := make([]string, len(disponibles))
	for i, m := range disponibles {
		codigos[i] = m.Codigo
	}
	want := []string{"QUI101", "MAT201"}
	if len(codigos) != len(want) {
		t.Fatalf("expected %v, got %v", want, codigos)
	}
	for i := range want {
		if codigos[i] != want[i] {
			t.Errorf("expected %v, got %v", want, codigos)
			break
		}
	}
}

func TestPensumService_AvailableCoursesCorequisite(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "FIS101", 1, 4, model.EstadoInscrita)
	lab := seedPensum(t, mocks, "LAB101", 1, 1, model.EstadoPendiente)
	lab.Corequisitos = model.StringList{"FIS101"}
	quim := seedPensum(t, mocks, "LABQ01", 1, 1, model.EstadoPendiente)
	quim.Corequisitos = model.StringList{"QUI101"}

	disponibles, err := svc.AvailableCourses(context.Background(), testUserID, 1)
	if err != nil {
		t.Fatalf("AvailableCourses: %v", err)
	}
	if len(disponibles) != 1 || disponibles[0].Codigo != "LAB101" {
		t.Errorf("expected only LAB101 with its corequisite enrolled, got %+v", disponibles)
	}
}

// ── credit check ──

func TestPensumService_CheckCreditosDefaultMax(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT201", 2, 10, model.EstadoPendiente)
	seedPensum(t, mocks, "FIS201", 2, 8, model.EstadoPendiente)

	check, err := svc.CheckCreditos(context.Background(), testUserID, 2, 4)
	if err != nil {
		t.Fatalf("CheckCreditos: %v", err)
	}
	if check.Permitido {
		t.Error("18+4 exceeds the default maximum of 21, expected not permitted")
	}
	if check.CreditosActuales != 18 || check.NuevoTotal != 22 || check.CreditosMaximos != 21 || check.Exceso != 1 {
		t.Errorf("unexpected totals: %+v", check)
	}

	check, err = svc.CheckCreditos(context.Background(), testUserID, 2, 3)
	if err != nil {
		t.Fatalf("CheckCreditos: %v", err)
	}
	if !check.Permitido || check.Exceso != 0 {
		t.Errorf("18+3 fits in 21, expected permitted: %+v", check)
	}
}

func TestPensumService_CheckCreditosConfiguredMax(t *testing.T) {
	mocks, svc := newPensumTest(t)
	if err := mocks.configuracion.Upsert(context.Background(), &model.Configuracion{
		UserID:          testUserID,
		NotaMinima:      3.0,
		CreditosMaximos: 15,
	}); err != nil {
		t.Fatalf("seed configuracion: %v", err)
	}
	seedPensum(t, mocks, "MAT201", 2, 12, model.EstadoPendiente)

	check, err := svc.CheckCreditos(context.Background(), testUserID, 2, 4)
	if err != nil {
		t.Fatalf("CheckCreditos: %v", err)
	}
	if check.Permitido || check.CreditosMaximos != 15 || check.Exceso != 1 {
		t.Errorf("expected configured maximum of 15 to apply: %+v", check)
	}
}

// ── estado derivation ──

func TestPensumService_RefreshEstados(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoBloqueada, "MAT101") // prereq now passed
	seedPensum(t, mocks, "MAT301", 3, 4, model.EstadoPendiente, "MAT201") // prereq not passed
	seedPensum(t, mocks, "FIS201", 2, 4, model.EstadoInscrita, "MAT999")  // enrolled stays enrolled

	materias, err := svc.RefreshEstados(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("RefreshEstados: %v", err)
	}

	estados := make(map[string]string, len(materias))
	for _, m := range materias {
		estados[m.Codigo] = m.Estado
	}
	if estados["MAT201"] != model.EstadoPendiente {
		t.Errorf("MAT201 must unblock once its prerequisite passes, got %s", estados["MAT201"])
	}
	if estados["MAT301"] != model.EstadoBloqueada {
		t.Errorf("MAT301 must block while its prerequisite is unmet, got %s", estados["MAT301"])
	}
	if estados["FIS201"] != model.EstadoInscrita {
		t.Errorf("enrolled courses must keep their estado, got %s", estados["FIS201"])
	}

	stored, err := mocks.materias.GetByCodigo(context.Background(), testUserID, "MAT201")
	if err != nil {
		t.Fatalf("GetByCodigo: %v", err)
	}
	if stored.Estado != model.EstadoPendiente {
		t.Errorf("derived estado was not persisted, got %s", stored.Estado)
	}
}

// ── structure validation ──

func TestPensumService_ValidateStructure(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "MAT101", 1, 4, model.EstadoAprobada)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "MAT101")

	resultado, err := svc.ValidateStructure(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("ValidateStructure: %v", err)
	}
	if !resultado.Valida || len(resultado.Errores) != 0 {
		t.Errorf("expected valid pensum, got %+v", resultado)
	}
}

func TestPensumService_ValidateStructureProblems(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "FIS201", 2, 4, model.EstadoPendiente, "FIS100")
	seedPensum(t, mocks, "QUI300", 2, 3, model.EstadoPendiente)
	seedPensum(t, mocks, "MAT201", 2, 4, model.EstadoPendiente, "QUI300")
	lab := &model.Materia{
		UserID:        testUserID,
		Codigo:        "LAB101",
		Nombre:        "Laboratorio",
		Creditos:      1,
		Semestre:      1,
		Estado:        model.EstadoPendiente,
		Prerequisitos: model.StringList{},
		Corequisitos:  model.StringList{"QUI999"},
	}
	if err := mocks.materias.Create(context.Background(), lab); err != nil {
		t.Fatalf("seed materia: %v", err)
	}

	resultado, err := svc.ValidateStructure(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("ValidateStructure: %v", err)
	}
	if resultado.Valida {
		t.Fatal("expected invalid pensum")
	}
	if len(resultado.Errores) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(resultado.Errores), resultado.Errores)
	}
	conjunto := strings.Join(resultado.Errores, "\n")
	for _, quiere := range []string{
		`FIS201: prerequisite "FIS100" not in pensum`,
		`MAT201: prerequisite "QUI300" must be in an earlier semester`,
		`LAB101: corequisite "QUI999" not in pensum`,
	} {
		if !strings.Contains(conjunto, quiere) {
			t.Errorf("missing error %q in %v", quiere, resultado.Errores)
		}
	}
}

func TestPensumService_ValidateStructureCycle(t *testing.T) {
	mocks, svc := newPensumTest(t)
	seedPensum(t, mocks, "CIC1", 1, 3, model.EstadoPendiente, "CIC2")
	seedPensum(t, mocks, "CIC2", 2, 3, model.EstadoPendiente, "CIC1")

	resultado, err := svc.ValidateStructure(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("ValidateStructure: %v", err)
	}
	if resultado.Valida {
		t.Fatal("expected invalid pensum")
	}
	conjunto := strings.Join(resultado.Errores, "\n")
	if !strings.Contains(conjunto, "circular dependency: CIC1 -> CIC2 -> CIC1") {
		t.Errorf("expected cycle path in errors, got %v", resultado.Errores)
	}
}
