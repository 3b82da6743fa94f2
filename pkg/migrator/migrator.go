// Package migrator runs the embedded schema migrations against the configured
// database before the server starts serving requests.
package migrator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"telemetry-api/pkg/dialect"
)

// Migrator applies pending schema migrations.
type Migrator interface {
	Migrate() error
}

// New creates a migrator for the given dialect. The filesystem must contain
// a top-level "migrations" directory.
//
//nolint:ireturn // Returns Migrator interface
func New(l *slog.Logger, d dialect.Dialect, connStr string, fsys fs.FS) (Migrator, error) {
	if _, err := fs.ReadDir(fsys, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	switch d {
	case dialect.PostgreSQL:
		return newPostgresMigrator(l, fsys, connStr)
	case dialect.SQLite:
		return newSQLiteMigrator(l, fsys, connStr)
	case dialect.Memory:
		return nil, errors.New("memory dialect has no migrations")
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", d)
	}
}
