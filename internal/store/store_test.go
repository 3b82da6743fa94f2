package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"telemetry-api/pkg/utils"
)

func TestCreateAssignsIdentity(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, Reading{
		Kind:  "sensor",
		Name:  "temp1",
		Value: json.RawMessage(`21.5`),
		Unit:  "C",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID == "" {
		t.Error("Create() should assign an id")
	}

	if created.Timestamp.IsZero() {
		t.Error("Create() should assign a timestamp")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Kind != "sensor" || got.Name != "temp1" || got.Unit != "C" {
		t.Errorf("Get() = %+v, want stored fields preserved", got)
	}

	if string(got.Value) != `21.5` {
		t.Errorf("Get() Value = %s, want 21.5", got.Value)
	}
}

func TestCreatePreservesCallerTimestamp(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	created, err := s.Create(context.Background(), Reading{Name: "temp1", Timestamp: ts})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !created.Timestamp.Equal(ts) {
		t.Errorf("Create() Timestamp = %v, want %v", created.Timestamp, ts)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	seen := map[string]struct{}{}

	for range 100 {
		created, err := s.Create(ctx, Reading{Name: "temp1"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if _, dup := seen[created.ID]; dup {
			t.Fatalf("Create() assigned duplicate id %s", created.ID)
		}

		seen[created.ID] = struct{}{}
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nonexistent-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteReturnsPriorState(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, Reading{Name: "temp1", Kind: "sensor"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if deleted.ID != created.ID || deleted.Name != "temp1" {
		t.Errorf("Delete() = %+v, want prior record state", deleted)
	}

	if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}

	if _, err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, Reading{Name: "temp1", Kind: "sensor", Unit: "C"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	replaced, err := s.Replace(ctx, Reading{
		ID:        created.ID,
		Name:      "temp1b",
		Timestamp: created.Timestamp,
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if replaced.ID != created.ID {
		t.Errorf("Replace() ID = %s, want %s", replaced.ID, created.ID)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Replace overwrites the whole record, so fields absent from the
	// replacement are cleared rather than merged.
	if got.Name != "temp1b" || got.Kind != "" || got.Unit != "" {
		t.Errorf("Get() after Replace() = %+v, want fully replaced fields", got)
	}
}

func TestReplaceDefaultsTimestamp(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, Reading{Name: "temp1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A replacement without a timestamp must not zero out the stored one.
	replaced, err := s.Replace(ctx, Reading{ID: created.ID, Name: "temp1b"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if replaced.Timestamp.IsZero() {
		t.Error("Replace() should default a zero timestamp")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Timestamp.IsZero() {
		t.Error("stored reading should keep a non-zero timestamp after Replace()")
	}
}

func TestReplaceMissing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, err := s.Replace(context.Background(), Reading{ID: "nonexistent-id", Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace() error = %v, want ErrNotFound", err)
	}
}

func TestSearchEqualitySemantics(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	seed := []Reading{
		{Kind: "sensor", Name: "temp1"},
		{Kind: "sensor", Name: "temp2"},
		{Kind: "actuator", Name: "valve1"},
		{Kind: "", Name: "unclassified"},
	}

	for _, r := range seed {
		if _, err := s.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		filter    Filter
		wantNames []string
	}{
		{
			name:      "no filters returns everything",
			filter:    Filter{},
			wantNames: []string{"temp1", "temp2", "valve1", "unclassified"},
		},
		{
			name:      "kind filter",
			filter:    Filter{Kind: utils.Ptr("sensor")},
			wantNames: []string{"temp1", "temp2"},
		},
		{
			name:      "name filter",
			filter:    Filter{Name: utils.Ptr("temp1")},
			wantNames: []string{"temp1"},
		},
		{
			name:      "kind and name conjunction",
			filter:    Filter{Kind: utils.Ptr("sensor"), Name: utils.Ptr("temp2")},
			wantNames: []string{"temp2"},
		},
		{
			name:      "explicit empty string filters on empty",
			filter:    Filter{Kind: utils.Ptr("")},
			wantNames: []string{"unclassified"},
		},
		{
			name:      "no match yields empty result",
			filter:    Filter{Kind: utils.Ptr("robot")},
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.Search(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if len(got) != len(tt.wantNames) {
				t.Fatalf("Search() returned %d readings, want %d", len(got), len(tt.wantNames))
			}

			for i, r := range got {
				if r.Name != tt.wantNames[i] {
					t.Errorf("Search()[%d].Name = %s, want %s", i, r.Name, tt.wantNames[i])
				}
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	t.Parallel()

	r := Reading{Kind: "sensor", Name: "temp1"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"matching kind", Filter{Kind: utils.Ptr("sensor")}, true},
		{"mismatched kind", Filter{Kind: utils.Ptr("actuator")}, false},
		{"empty string kind mismatch", Filter{Kind: utils.Ptr("")}, false},
		{"matching conjunction", Filter{Kind: utils.Ptr("sensor"), Name: utils.Ptr("temp1")}, true},
		{"half-matching conjunction", Filter{Kind: utils.Ptr("sensor"), Name: utils.Ptr("temp2")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.filter.Matches(r); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
