package mqtt

import (
	"log/slog"

	"telemetry-api/internal/services"
)

// Topics of the push channel. Devices publish new readings inbound;
// the service announces record lifecycle events outbound.
const (
	TopicNewReading     = "telemetry/readings/new"
	TopicReadingCreated = "telemetry/readings/created"
	TopicReadingDeleted = "telemetry/readings/deleted"
)

// Handler handles MQTT message processing.
type Handler struct {
	l   *slog.Logger
	svc *services.Services
}

// NewMQTTHandler creates a new MQTT handler.
func NewMQTTHandler(l *slog.Logger, svc *services.Services) *Handler {
	return &Handler{
		l:   l.With(slog.String("component", "mqtt-handler")),
		svc: svc,
	}
}
