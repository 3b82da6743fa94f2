package services

import (
	"context"
	"log/slog"

	"telemetry-api/internal/store"
	"telemetry-api/pkg/utils"
)

// TelemetryService owns the reading lifecycle: persistence plus the
// rebroadcast of creations and deletions to connected subscribers.
// Updates are deliberately silent; only create and delete events go out.
type TelemetryService struct {
	l           *slog.Logger
	store       store.Store
	broadcaster Broadcaster
}

// NewTelemetryService creates a new telemetry service instance.
func NewTelemetryService(l *slog.Logger, st store.Store, bc Broadcaster) *TelemetryService {
	return &TelemetryService{
		l:           l.With(slog.String("service", "telemetry")),
		store:       st,
		broadcaster: bc,
	}
}

// List returns every stored reading.
func (s *TelemetryService) List(ctx context.Context) ([]store.Reading, error) {
	return s.store.List(ctx)
}

// Get returns a single reading by id.
func (s *TelemetryService) Get(ctx context.Context, id string) (store.Reading, error) {
	return s.store.Get(ctx, id)
}

// Search returns the readings matching every constraint in f.
func (s *TelemetryService) Search(ctx context.Context, f store.Filter) ([]store.Reading, error) {
	return s.store.Search(ctx, f)
}

// Create persists a new reading and announces it to subscribers.
// The broadcast happens only after the record is durably stored.
func (s *TelemetryService) Create(ctx context.Context, r store.Reading) (store.Reading, error) {
	created, err := s.store.Create(ctx, r)
	if err != nil {
		return store.Reading{}, err
	}

	s.broadcaster.ReadingCreated(created)

	return created, nil
}

// Update replaces an existing reading in place. No event is broadcast.
func (s *TelemetryService) Update(ctx context.Context, r store.Reading) (store.Reading, error) {
	return s.store.Replace(ctx, r)
}

// Delete removes a reading and announces its last state to subscribers.
func (s *TelemetryService) Delete(ctx context.Context, id string) (store.Reading, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return store.Reading{}, err
	}

	s.broadcaster.ReadingDeleted(deleted)

	return deleted, nil
}

// IngestPush handles a reading arriving over the push channel. The sender
// gets no reply, so failures are logged and dropped instead of returned.
func (s *TelemetryService) IngestPush(ctx context.Context, r store.Reading) {
	created, err := s.Create(ctx, r)
	if err != nil {
		s.l.Error("failed to ingest pushed reading",
			slog.String("name", r.Name),
			utils.ErrAttr(err))

		return
	}

	s.l.Info("ingested pushed reading",
		slog.String("id", created.ID),
		slog.String("kind", created.Kind),
		slog.String("name", created.Name))
}
