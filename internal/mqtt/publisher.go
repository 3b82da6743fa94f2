package mqtt

import (
	"log/slog"

	"telemetry-api/internal/store"
	"telemetry-api/pkg/mqtt"
	"telemetry-api/pkg/utils"
)

// Publisher rebroadcasts record lifecycle events over MQTT. Delivery is
// best-effort: publish failures are logged and dropped so the triggering
// operation never fails because of a broadcast problem.
type Publisher struct {
	l      *slog.Logger
	client *mqtt.MQTTClient
}

// NewPublisher creates a publisher backed by the given MQTT client.
func NewPublisher(l *slog.Logger, client *mqtt.MQTTClient) *Publisher {
	return &Publisher{
		l:      l.With(slog.String("component", "mqtt-publisher")),
		client: client,
	}
}

// ReadingCreated announces a newly stored reading.
func (p *Publisher) ReadingCreated(r store.Reading) {
	p.publish("publishReadingCreated", TopicReadingCreated, r)
}

// ReadingDeleted announces a removed reading with its last state.
func (p *Publisher) ReadingDeleted(r store.Reading) {
	p.publish("publishReadingDeleted", TopicReadingDeleted, r)
}

func (p *Publisher) publish(operationID, topic string, r store.Reading) {
	if !p.client.IsConnected() {
		p.l.Warn("skipping broadcast, broker not connected",
			slog.String("topic", topic),
			slog.String("id", r.ID))

		return
	}

	if err := p.client.Publish(operationID, topic, r); err != nil {
		p.l.Error("failed to broadcast reading event",
			slog.String("topic", topic),
			slog.String("id", r.ID),
			utils.ErrAttr(err))
	}
}
