package services

import (
	"log/slog"

	"telemetry-api/internal/store"
	"telemetry-api/pkg/mqtt"
)

// Broadcaster fans out record lifecycle events to connected subscribers.
// Delivery is best-effort: implementations log failures and never return
// errors to the caller, so a broadcast problem cannot fail the operation
// that triggered it.
type Broadcaster interface {
	// ReadingCreated announces a newly persisted reading.
	ReadingCreated(r store.Reading)
	// ReadingDeleted announces a removed reading, carrying its last state.
	ReadingDeleted(r store.Reading)
}

// Services holds all service instances.
type Services struct {
	l         *slog.Logger
	Core      *CoreService
	Telemetry *TelemetryService
}

// NewServices creates a new services instance.
func NewServices(l *slog.Logger, st store.Store, mqttClient *mqtt.MQTTClient, bc Broadcaster) *Services {
	return &Services{
		l:         l.With(slog.String("module", "services")),
		Core:      NewCoreService(l, st, mqttClient),
		Telemetry: NewTelemetryService(l, st, bc),
	}
}
