package types

import (
	"encoding/json"
	"time"

	"telemetry-api/internal/store"
)

// NewReadingMessage is the payload devices push to submit a reading.
// It mirrors the HTTP request body; the id and final timestamp are
// assigned at storage time.
type NewReadingMessage struct {
	// Kind classifies the device (e.g., "sensor", "actuator")
	Kind string `json:"kind,omitempty"`
	// Name identifies the device instance
	Name string `json:"name,omitempty"`
	// Value is the reading payload, any JSON shape
	Value json.RawMessage `json:"value,omitempty"`
	// Unit of measurement
	Unit string `json:"unit,omitempty"`
	// Timestamp of the reading; defaults to the time of creation
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ToReading converts the pushed message into a store record.
func (m NewReadingMessage) ToReading() store.Reading {
	r := store.Reading{
		Kind:  m.Kind,
		Name:  m.Name,
		Value: m.Value,
		Unit:  m.Unit,
	}

	if m.Timestamp != nil {
		r.Timestamp = *m.Timestamp
	}

	return r
}
