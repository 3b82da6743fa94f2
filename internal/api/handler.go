package api

import (
	"log/slog"

	"telemetry-api/internal/services"
)

const (
	CoreGroup     = "Core"
	ReadingsGroup = "Readings"
)

// Handler represents the HTTP API handler.
type Handler struct {
	l   *slog.Logger
	svc *services.Services
}

// NewHandler creates a new HTTP API handler.
func NewHandler(l *slog.Logger, svc *services.Services) *Handler {
	return &Handler{
		l:   l.With(slog.String("component", "api")),
		svc: svc,
	}
}
