package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"telemetry-api/internal/mqtt/types"
	"telemetry-api/internal/store"
	"telemetry-api/pkg/mqtt"
	"telemetry-api/pkg/utils"
)

// RegisterNewReadingSubscribe registers the inbound reading subscription.
func (s *Handler) RegisterNewReadingSubscribe(mb *mqtt.MQTTBuilder) {
	mb.MustRegisterSubscribe(TopicNewReading, mqtt.SubscriptionSpec{
		OperationID: "subscribeNewReading",
		Summary:     "Receive pushed readings",
		Description: "Receives readings pushed by devices. Each message is stored as a new record; the sender gets no reply.",
		Group:       "Readings",
		MessageType: types.NewReadingMessage{
			Kind:  "sensor",
			Name:  "temp1",
			Value: json.RawMessage(`21.5`),
			Unit:  "C",
		},
		Handler: s.handleNewReading,
		QoS:     mqtt.QoSAtLeastOnce,
	})
}

// handleNewReading handles a reading pushed by a device.
func (s *Handler) handleNewReading(client pahomqtt.Client, msg pahomqtt.Message) {
	var reading types.NewReadingMessage
	if err := json.Unmarshal(msg.Payload(), &reading); err != nil {
		s.l.Error("failed to unmarshal pushed reading",
			slog.String("topic", msg.Topic()),
			utils.ErrAttr(err))

		return
	}

	s.svc.Telemetry.IngestPush(context.Background(), reading.ToReading())
}

// RegisterReadingCreatedPublish registers the created-event publication.
func (s *Handler) RegisterReadingCreatedPublish(mb *mqtt.MQTTBuilder) {
	mb.MustRegisterPublish(TopicReadingCreated, mqtt.PublicationSpec{
		OperationID: "publishReadingCreated",
		Summary:     "Announce a created reading",
		Description: "Published after a reading is stored, whether it arrived over HTTP or the push channel. Carries the full stored record.",
		Group:       "Readings",
		MessageType: store.Reading{},
		QoS:         mqtt.QoSAtMostOnce,
		Retained:    false,
	})
}

// RegisterReadingDeletedPublish registers the deleted-event publication.
func (s *Handler) RegisterReadingDeletedPublish(mb *mqtt.MQTTBuilder) {
	mb.MustRegisterPublish(TopicReadingDeleted, mqtt.PublicationSpec{
		OperationID: "publishReadingDeleted",
		Summary:     "Announce a deleted reading",
		Description: "Published after a reading is removed. Carries the record's last state.",
		Group:       "Readings",
		MessageType: store.Reading{},
		QoS:         mqtt.QoSAtMostOnce,
		Retained:    false,
	})
}
