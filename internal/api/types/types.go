package types

import (
	"encoding/json"
	"time"

	"telemetry-api/internal/store"
)

// ReadingRequest is the request body for creating or replacing a reading.
// Every field is optional; devices report whatever they have.
type ReadingRequest struct {
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

// ToReading converts the request body into a store record.
func (req ReadingRequest) ToReading() store.Reading {
	r := store.Reading{
		Kind:  req.Kind,
		Name:  req.Name,
		Value: req.Value,
		Unit:  req.Unit,
	}

	if req.Timestamp != nil {
		r.Timestamp = *req.Timestamp
	}

	return r
}

// DeleteReadingResponse confirms a deletion and echoes the removed record.
type DeleteReadingResponse struct {
	// Human-readable confirmation
	Message string `json:"message"`
	// Last state of the removed reading
	Reading store.Reading `json:"reading"`
}
