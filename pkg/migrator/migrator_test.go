//go:build cgo
// +build cgo

package migrator

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"telemetry-api/pkg/dialect"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		"migrations/20260901000001_create_things.sql": &fstest.MapFile{
			Data: []byte("-- migrate:up\nCREATE TABLE things (id TEXT PRIMARY KEY, name TEXT NOT NULL DEFAULT '');\n\n-- migrate:down\nDROP TABLE things;\n"),
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	logger := testLogger()

	t.Run("missing migrations directory", func(t *testing.T) {
		t.Parallel()

		_, err := New(logger, dialect.SQLite, filepath.Join(t.TempDir(), "test.db"), fstest.MapFS{})
		if err == nil {
			t.Error("New() should return error for FS without migrations directory")
		}
	})

	t.Run("memory dialect", func(t *testing.T) {
		t.Parallel()

		_, err := New(logger, dialect.Memory, "unused", fixtureFS())
		if err == nil {
			t.Error("New() should return error for memory dialect")
		}
	})

	t.Run("empty sqlite connection string", func(t *testing.T) {
		t.Parallel()

		_, err := New(logger, dialect.SQLite, "", fixtureFS())
		if err == nil {
			t.Error("New() should return error for empty connection string")
		}
	})

	t.Run("empty postgres connection string", func(t *testing.T) {
		t.Parallel()

		_, err := New(logger, dialect.PostgreSQL, "", fixtureFS())
		if err == nil {
			t.Error("New() should return error for empty connection string")
		}
	})

	t.Run("sqlite in-memory path rejected", func(t *testing.T) {
		t.Parallel()

		_, err := New(logger, dialect.SQLite, ":memory:", fixtureFS())
		if err == nil {
			t.Error("New() should reject in-memory SQLite databases")
		}
	})
}

func TestMigrateSQLite(t *testing.T) {
	t.Parallel()

	logger := testLogger()

	t.Run("successful migration", func(t *testing.T) {
		t.Parallel()

		tmpFile := filepath.Join(t.TempDir(), "test.db")

		m, err := New(logger, dialect.SQLite, tmpFile, fixtureFS())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if err := m.Migrate(); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}

		if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
			t.Error("Migrate() did not create database file")
		}
	})

	t.Run("migrate twice idempotent", func(t *testing.T) {
		t.Parallel()

		tmpFile := filepath.Join(t.TempDir(), "test.db")

		m, err := New(logger, dialect.SQLite, tmpFile, fixtureFS())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if err := m.Migrate(); err != nil {
			t.Fatalf("First Migrate() error = %v", err)
		}

		if err := m.Migrate(); err != nil {
			t.Fatalf("Second Migrate() error = %v", err)
		}
	})
}
