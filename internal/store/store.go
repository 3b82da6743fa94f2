// Package store is the durable collection of readings. It owns record
// identity: Create assigns an opaque unique id and a timestamp when the
// caller did not supply one.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"telemetry-api/pkg/utils"
)

var (
	// ErrNotFound is returned when an id-keyed operation targets a record
	// that does not exist.
	ErrNotFound = errors.New("reading not found")
	// ErrUnavailable is returned when the underlying persistence layer
	// cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// Reading is a single timestamped sensor/actuator data point. Value is
// deliberately schema-free: sensor payloads vary per device, so anything
// JSON-shaped is accepted and stored as-is.
type Reading struct {
	// ID is the opaque unique identifier, assigned at create, immutable.
	ID string `json:"id"`
	// Kind classifies the device (e.g., "sensor", "actuator").
	Kind string `json:"kind,omitempty"`
	// Name identifies the device instance (e.g., "temp1").
	Name string `json:"name,omitempty"`
	// Value is the reading payload; scalar, string or structured object.
	Value json.RawMessage `json:"value,omitempty"`
	// Unit describes the measurement unit (e.g., "C").
	Unit string `json:"unit,omitempty"`
	// Timestamp is the creation time, defaulted at create when absent.
	Timestamp time.Time `json:"timestamp"`
}

// Filter is a conjunction of equality constraints. A nil field is not
// applied; a pointer to the empty string still filters on equality with "".
type Filter struct {
	Kind *string
	Name *string
}

// Matches reports whether r satisfies every constraint set on f.
func (f Filter) Matches(r Reading) bool {
	if f.Kind != nil && r.Kind != *f.Kind {
		return false
	}

	if f.Name != nil && r.Name != *f.Name {
		return false
	}

	return true
}

// Store is the persistence contract for readings. Each operation is
// independently atomic at the single-record level; there is no multi-record
// atomicity.
type Store interface {
	// Create persists r, assigning ID and defaulting Timestamp when zero,
	// and returns the stored record.
	Create(ctx context.Context, r Reading) (Reading, error)
	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (Reading, error)
	// List returns all records in store-native order.
	List(ctx context.Context) ([]Reading, error)
	// Search returns all records matching the filter, possibly empty.
	Search(ctx context.Context, f Filter) ([]Reading, error)
	// Replace overwrites every non-id field of the record with r's fields,
	// keyed by r.ID, defaulting Timestamp when zero so a stored record
	// never loses it. Returns ErrNotFound if the id does not exist.
	Replace(ctx context.Context, r Reading) (Reading, error)
	// Delete permanently removes the record and returns its prior state,
	// or ErrNotFound.
	Delete(ctx context.Context, id string) (Reading, error)
	// Ping reports connectivity to the persistence layer.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}

// applyCreateDefaults assigns identity and timestamp for a new record.
func applyCreateDefaults(r *Reading) {
	r.ID = utils.NewUUID()
	applyReplaceDefaults(r)
}

// applyReplaceDefaults keeps the timestamp non-zero on full replacement.
func applyReplaceDefaults(r *Reading) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
}
