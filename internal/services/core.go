package services

import (
	"context"
	"log/slog"

	"telemetry-api/internal/store"
	"telemetry-api/pkg/mqtt"
	"telemetry-api/pkg/utils"
)

// CoreService handles core business logic.
type CoreService struct {
	l     *slog.Logger
	store store.Store
	mqtt  *mqtt.MQTTClient
}

// NewCoreService creates a new core service instance.
func NewCoreService(l *slog.Logger, st store.Store, mqttClient *mqtt.MQTTClient) *CoreService {
	return &CoreService{
		l:     l.With(slog.String("service", "core")),
		store: st,
		mqtt:  mqttClient,
	}
}

// HealthStatus represents the health status of the service's dependencies.
type HealthStatus struct {
	Database bool
	MQTT     bool
}

// Health checks the health of the store and the MQTT connection.
func (s *CoreService) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Database: true,
		MQTT:     true,
	}

	if err := s.store.Ping(ctx); err != nil {
		s.l.Error("store unreachable", utils.ErrAttr(err))

		status.Database = false
	}

	if s.mqtt == nil || !s.mqtt.IsConnected() {
		s.l.Error("mqtt broker unreachable")

		status.MQTT = false
	}

	return status
}
