package store

import (
	"context"
	"sync"
)

// MemoryStore keeps readings in process memory. It backs the memory dialect
// and the service tests; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	readings map[string]Reading
	order    []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		readings: make(map[string]Reading),
	}
}

func (s *MemoryStore) Create(_ context.Context, r Reading) (Reading, error) {
	applyCreateDefaults(&r)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings[r.ID] = r
	s.order = append(s.order, r.ID)

	return r, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.readings[id]
	if !ok {
		return Reading{}, ErrNotFound
	}

	return r, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	readings := make([]Reading, 0, len(s.order))
	for _, id := range s.order {
		readings = append(readings, s.readings[id])
	}

	return readings, nil
}

func (s *MemoryStore) Search(_ context.Context, f Filter) ([]Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	readings := []Reading{}

	for _, id := range s.order {
		if r := s.readings[id]; f.Matches(r) {
			readings = append(readings, r)
		}
	}

	return readings, nil
}

func (s *MemoryStore) Replace(_ context.Context, r Reading) (Reading, error) {
	applyReplaceDefaults(&r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.readings[r.ID]; !ok {
		return Reading{}, ErrNotFound
	}

	s.readings[r.ID] = r

	return r, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.readings[id]
	if !ok {
		return Reading{}, ErrNotFound
	}

	delete(s.readings, id)

	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return r, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
