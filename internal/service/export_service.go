package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Samu-Kiss/Uni-App/internal/model"
	"github.com/Samu-Kiss/Uni-App/internal/repository"
)

// ── export module errors ──

var (
	ErrExportGenerateFail = errors.New("export generation failed")
	ErrFechasInvalidas    = errors.New("invalid semester dates")
)

// Accepted semester length for ICS recurrence bounds.
const (
	minDiasSemestre = 60
	maxDiasSemestre = 200
)

// rruleDays maps schedule days to iCalendar BYDAY codes.
var rruleDays = map[int]string{
	model.DiaLunes:     "MO",
	model.DiaMartes:    "TU",
	model.DiaMiercoles: "WE",
	model.DiaJueves:    "TH",
	model.DiaViernes:   "FR",
	model.DiaSabado:    "SA",
}

// ExportService renders the active schedule as iCalendar or Excel.
// Exports return a bytes.Buffer; the handler sets the HTTP headers.
// ICS events recur weekly; when semester dates are given the events are
// anchored at the semester start and bounded with an UNTIL rule.
type ExportService interface {
	ExportICS(ctx context.Context, userID string, inicio, fin *time.Time) (*bytes.Buffer, string, error)
	ExportExcel(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		loc = time.Local
	}
	return &exportService{repo: repo, logger: logger, loc: loc}
}

func (s *exportService) activeSchedule(ctx context.Context, userID string) (*model.HorarioSeleccionado, error) {
	horario, err := s.repo.Horario.GetActive(ctx, userID)
	if err != nil {
		return nil, ErrNoActiveSchedule
	}
	return horario, nil
}

// nextWeekday returns the first date at or after from falling on the
// given schedule day, anchoring the weekly recurrence.
func nextWeekday(from time.Time, dia int) time.Time {
	// time.Weekday: Sunday=0; schedule days: Monday=1..Saturday=6
	offset := (dia - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

func (s *exportService) ExportICS(ctx context.Context, userID string, inicio, fin *time.Time) (*bytes.Buffer, string, error) {
	if inicio != nil && fin != nil {
		dias := int(fin.Sub(*inicio).Hours() / 24)
		if !fin.After(*inicio) || dias < minDiasSemestre || dias > maxDiasSemestre {
			return nil, "", ErrFechasInvalidas
		}
	}

	horario, err := s.activeSchedule(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Uni-App//Horario//ES")

	now := time.Now().In(s.loc)
	ancla := now
	if inicio != nil {
		// Keep the calendar date regardless of the parsed zone.
		ancla = time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, s.loc)
	}
	for _, snap := range horario.Clases {
		for _, b := range snap.Horario {
			desde, err := parseHora(b.HoraInicio)
			if err != nil {
				return nil, "", &MalformedTimeBlockError{NRC: snap.NRC, Bloque: b}
			}
			hasta, err := parseHora(b.HoraFin)
			if err != nil {
				return nil, "", &MalformedTimeBlockError{NRC: snap.NRC, Bloque: b}
			}

			fecha := nextWeekday(ancla, b.Dia)
			start := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), desde/60, desde%60, 0, 0, s.loc)
			end := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), hasta/60, hasta%60, 0, 0, s.loc)

			event := cal.AddEvent(uuid.New().String())
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s %s", snap.MateriaCodigo, snap.MateriaNombre))
			if snap.Profesor != "" {
				event.SetDescription(fmt.Sprintf("NRC %s — %s", snap.NRC, snap.Profesor))
			} else {
				event.SetDescription(fmt.Sprintf("NRC %s", snap.NRC))
			}
			rrule := fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", rruleDays[b.Dia])
			if fin != nil {
				rrule += ";UNTIL=" + fin.UTC().Format("20060102T150405Z")
			}
			event.AddRrule(rrule)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "horario.ics", nil
}

func (s *exportService) ExportExcel(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	horario, err := s.activeSchedule(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	type fila struct {
		dia    int
		inicio string
		fin    string
		texto  string
	}
	var filas []fila
	for _, snap := range horario.Clases {
		texto := fmt.Sprintf("%s %s (NRC %s)", snap.MateriaCodigo, snap.MateriaNombre, snap.NRC)
		if snap.Profesor != "" {
			texto += " — " + snap.Profesor
		}
		for _, b := range snap.Horario {
			filas = append(filas, fila{dia: b.Dia, inicio: b.HoraInicio, fin: b.HoraFin, texto: texto})
		}
	}
	sort.Slice(filas, func(i, j int) bool {
		if filas[i].dia != filas[j].dia {
			return filas[i].dia < filas[j].dia
		}
		return filas[i].inicio < filas[j].inicio
	})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Horario"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 50)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Horario seleccionado (puntaje %d)", horario.Puntaje))
	f.MergeCell(sheetName, "A1", "C1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Día")
	f.SetCellValue(sheetName, cell("B", row), "Hora")
	f.SetCellValue(sheetName, cell("C", row), "Clase")

	row = 3
	for _, fl := range filas {
		f.SetCellValue(sheetName, cell("A", row), model.DiaNombres[fl.dia])
		f.SetCellValue(sheetName, cell("B", row), fmt.Sprintf("%s-%s", fl.inicio, fl.fin))
		f.SetCellValue(sheetName, cell("C", row), fl.texto)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("excel write failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "horario.xlsx", nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
