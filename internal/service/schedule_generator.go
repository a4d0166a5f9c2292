package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Samu-Kiss/Uni-App/internal/model"
)

// Generation bounds. Enumeration stops once maxCombinations valid
// combinations exist; a candidate space above the warning threshold
// attaches an advisory to the response without stopping the run.
const (
	maxCombinations             = 10000
	combinationWarningThreshold = 1000
)

// Scoring weights. The base score applies to every valid combination;
// block adjustments accumulate per meeting block.
const (
	puntajeBase           = 100
	bonoFranjaPreferida   = 10
	castigoMadrugada      = 5 // block starts before 08:00
	castigoNoche          = 3 // block ends after 19:00
)

// Boundaries in minutes from midnight.
const (
	inicioMadrugada = 8 * 60  // 08:00 — earlier starts are early morning
	finNoche        = 20 * 60 // 20:00 — later ends are filtered as late night
	finNochePuntaje = 19 * 60 // 19:00 — later ends lose points
)

// ErrNoEnrolledCourses means generation was requested with nothing enrolled.
var ErrNoEnrolledCourses = errors.New("no enrolled materias to schedule")

// MissingSectionsError lists enrolled materias that have no sections at all.
type MissingSectionsError struct {
	Codigos []string
}

func (e *MissingSectionsError) Error() string {
	return fmt.Sprintf("materias without sections: %s", strings.Join(e.Codigos, ", "))
}

// MalformedTimeBlockError flags a stored block that cannot be interpreted.
type MalformedTimeBlockError struct {
	NRC    string
	Bloque model.BloqueHorario
}

func (e *MalformedTimeBlockError) Error() string {
	return fmt.Sprintf("malformed time block in section %s: dia=%d %s-%s",
		e.NRC, e.Bloque.Dia, e.Bloque.HoraInicio, e.Bloque.HoraFin)
}

// GeneratorOptions carries the user's slot preferences into a run.
type GeneratorOptions struct {
	Bloqueadas      []model.Franja
	Preferidas      []model.Franja
	EvitarMadrugada bool
	EvitarNoche     bool
}

// CourseSections groups one enrolled materia with its offered sections.
type CourseSections struct {
	Materia model.Materia
	Clases  []model.Clase
}

// Combination is one conflict-free candidate schedule.
type Combination struct {
	Clases  []model.ClaseSnapshot
	Puntaje int
}

// GenerationResult is the ranked outcome of an enumeration run.
// TotalPosibles is the product of admissible section counts per materia;
// TotalEvaluadas counts the section placements tested during the search.
type GenerationResult struct {
	Combinaciones  []Combination
	TotalPosibles  int
	TotalEvaluadas int
	Truncated      bool
	Advertencia    string
}

// parseHora converts "HH:MM" to minutes from midnight.
func parseHora(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// bloqueMin is a meeting block resolved to minutes for comparison.
type bloqueMin struct {
	dia    int
	inicio int
	fin    int
}

// solapan reports whether two blocks overlap on the same day.
// Intervals are half-open, so back-to-back blocks do not conflict.
func solapan(a, b bloqueMin) bool {
	return a.dia == b.dia && a.inicio < b.fin && b.inicio < a.fin
}

// candidato is a section with its blocks pre-resolved to minutes.
type candidato struct {
	snapshot model.ClaseSnapshot
	bloques  []bloqueMin
}

func resolverBloques(clase *model.Clase) ([]bloqueMin, error) {
	bloques := make([]bloqueMin, 0, len(clase.Horario))
	for _, b := range clase.Horario {
		inicio, err := parseHora(b.HoraInicio)
		if err != nil {
			return nil, &MalformedTimeBlockError{NRC: clase.NRC, Bloque: b}
		}
		fin, err := parseHora(b.HoraFin)
		if err != nil {
			return nil, &MalformedTimeBlockError{NRC: clase.NRC, Bloque: b}
		}
		if b.Dia < model.DiaLunes || b.Dia > model.DiaSabado || inicio >= fin {
			return nil, &MalformedTimeBlockError{NRC: clase.NRC, Bloque: b}
		}
		bloques = append(bloques, bloqueMin{dia: b.Dia, inicio: inicio, fin: fin})
	}
	return bloques, nil
}

func resolverFranjas(franjas []model.Franja) ([]bloqueMin, error) {
	bloques := make([]bloqueMin, 0, len(franjas))
	for _, f := range franjas {
		inicio, err := parseHora(f.HoraInicio)
		if err != nil {
			return nil, fmt.Errorf("franja %s: bad hora_inicio %q: %w", f.ID, f.HoraInicio, err)
		}
		fin, err := parseHora(f.HoraFin)
		if err != nil {
			return nil, fmt.Errorf("franja %s: bad hora_fin %q: %w", f.ID, f.HoraFin, err)
		}
		bloques = append(bloques, bloqueMin{dia: f.Dia, inicio: inicio, fin: fin})
	}
	return bloques, nil
}

// admisible applies the hard section filters: blocked franjas and the
// early/late toggles. A section failing any filter never enters the search.
func admisible(c *candidato, bloqueadas []bloqueMin, opts *GeneratorOptions) bool {
	for _, b := range c.bloques {
		for _, f := range bloqueadas {
			if solapan(b, f) {
				return false
			}
		}
		if opts.EvitarMadrugada && b.inicio < inicioMadrugada {
			return false
		}
		if opts.EvitarNoche && b.fin > finNoche {
			return false
		}
	}
	return true
}

func snapshotDe(clase *model.Clase) model.ClaseSnapshot {
	snap := model.ClaseSnapshot{
		ClaseID:  clase.ID,
		NRC:      clase.NRC,
		Profesor: clase.Profesor,
		Horario:  make(model.BloqueList, len(clase.Horario)),
	}
	copy(snap.Horario, clase.Horario)
	if clase.Materia != nil {
		snap.MateriaCodigo = clase.Materia.Codigo
		snap.MateriaNombre = clase.Materia.Nombre
	}
	return snap
}

// puntuar scores a combination: the base score, a bonus for each block
// touching a preferred franja, and penalties for early starts and
// evening ends. The evening penalty cutoff is 19:00, an hour earlier
// than the hard late-night filter.
func puntuar(seleccion []*candidato, preferidas []bloqueMin) int {
	puntaje := puntajeBase
	for _, c := range seleccion {
		for _, b := range c.bloques {
			for _, p := range preferidas {
				if solapan(b, p) {
					puntaje += bonoFranjaPreferida
					break
				}
			}
			if b.inicio < inicioMadrugada {
				puntaje -= castigoMadrugada
			}
			if b.fin > finNochePuntaje {
				puntaje -= castigoNoche
			}
		}
	}
	return puntaje
}

// GenerateCombinations enumerates every conflict-free one-section-per-materia
// combination with iterative backtracking, then ranks by score descending.
// Ties keep discovery order. An empty result is a valid outcome, distinct
// from the error cases.
func GenerateCombinations(courses []CourseSections, opts *GeneratorOptions) (*GenerationResult, error) {
	if len(courses) == 0 {
		return nil, ErrNoEnrolledCourses
	}
	if opts == nil {
		opts = &GeneratorOptions{}
	}

	var sinSecciones []string
	for _, cs := range courses {
		if len(cs.Clases) == 0 {
			sinSecciones = append(sinSecciones, cs.Materia.Codigo)
		}
	}
	if len(sinSecciones) > 0 {
		sort.Strings(sinSecciones)
		return nil, &MissingSectionsError{Codigos: sinSecciones}
	}

	bloqueadas, err := resolverFranjas(opts.Bloqueadas)
	if err != nil {
		return nil, err
	}
	preferidas, err := resolverFranjas(opts.Preferidas)
	if err != nil {
		return nil, err
	}

	// Resolve and filter sections per materia. A materia left without
	// admissible sections makes the whole run empty, not an error.
	candidatos := make([][]*candidato, len(courses))
	posibles := 1
	for i, cs := range courses {
		materia := cs.Materia
		for j := range cs.Clases {
			clase := cs.Clases[j]
			if clase.Materia == nil {
				clase.Materia = &materia
			}
			bloques, err := resolverBloques(&clase)
			if err != nil {
				return nil, err
			}
			c := &candidato{snapshot: snapshotDe(&clase), bloques: bloques}
			if admisible(c, bloqueadas, opts) {
				candidatos[i] = append(candidatos[i], c)
			}
		}
		if len(candidatos[i]) == 0 {
			return &GenerationResult{Combinaciones: []Combination{}}, nil
		}
		if posibles <= math.MaxInt/len(candidatos[i]) {
			posibles *= len(candidatos[i])
		}
	}

	n := len(candidatos)
	resultados := make([]Combination, 0)
	seleccion := make([]*candidato, 0, n)
	siguiente := make([]int, n)
	truncado := false
	evaluadas := 0

	pos := 0
	for pos >= 0 {
		if pos == n {
			clases := make([]model.ClaseSnapshot, n)
			for i, c := range seleccion {
				clases[i] = c.snapshot
			}
			resultados = append(resultados, Combination{
				Clases:  clases,
				Puntaje: puntuar(seleccion, preferidas),
			})
			if len(resultados) >= maxCombinations {
				truncado = true
				break
			}
			pos--
			seleccion = seleccion[:pos]
			continue
		}

		avanzado := false
		for siguiente[pos] < len(candidatos[pos]) {
			c := candidatos[pos][siguiente[pos]]
			siguiente[pos]++
			evaluadas++
			if compatible(seleccion, c) {
				seleccion = append(seleccion, c)
				pos++
				if pos < n {
					siguiente[pos] = 0
				}
				avanzado = true
				break
			}
		}
		if avanzado {
			continue
		}
		pos--
		if pos >= 0 {
			seleccion = seleccion[:pos]
		}
	}

	sort.SliceStable(resultados, func(i, j int) bool {
		return resultados[i].Puntaje > resultados[j].Puntaje
	})

	// Advisory, not an error: the full list is still returned.
	var advertencia string
	if len(resultados) >= combinationWarningThreshold {
		advertencia = fmt.Sprintf("generated %d combinations; narrower franja preferences would shorten the list", len(resultados))
	}

	return &GenerationResult{
		Combinaciones:  resultados,
		TotalPosibles:  posibles,
		TotalEvaluadas: evaluadas,
		Truncated:      truncado,
		Advertencia:    advertencia,
	}, nil
}

// compatible reports whether a candidate conflicts with nothing already chosen.
func compatible(seleccion []*candidato, c *candidato) bool {
	for _, elegido := range seleccion {
		for _, a := range elegido.bloques {
			for _, b := range c.bloques {
				if solapan(a, b) {
					return false
				}
			}
		}
	}
	return true
}
