package handler

import "github.com/Samu-Kiss/Uni-App/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth     *AuthHandler
	Pensum   *PensumHandler
	Clase    *ClaseHandler
	Franja   *FranjaHandler
	Schedule *ScheduleHandler
	GPA      *GPAHandler
	Config   *ConfigHandler
	Export   *ExportHandler
}

// NewHandler wires the aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Pensum:   NewPensumHandler(svc.Pensum),
		Clase:    NewClaseHandler(svc.Clase),
		Franja:   NewFranjaHandler(svc.Franja),
		Schedule: NewScheduleHandler(svc.Schedule),
		GPA:      NewGPAHandler(svc.GPA),
		Config:   NewConfigHandler(svc.Config),
		Export:   NewExportHandler(svc.Export),
	}
}
