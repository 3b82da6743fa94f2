package sqlite

import (
	"io/fs"
	"strings"
	"testing"
)

func TestGetMigrationsFS(t *testing.T) {
	t.Parallel()

	migrationsFS := GetMigrationsFS()

	// Verify migrations directory exists in the embedded FS
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	// There should be at least some migration files
	if len(entries) == 0 {
		t.Error("migrations directory is empty")
	}

	// Verify entries are SQL files
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), ".sql") {
			t.Errorf("Expected .sql file, got: %s", entry.Name())
		}
	}
}

func TestMigrationFilesReadable(t *testing.T) {
	t.Parallel()

	migrationsFS := GetMigrationsFS()

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	// Try to read each migration file
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := fs.ReadFile(migrationsFS, "migrations/"+entry.Name())
		if err != nil {
			t.Errorf("Failed to read migration %s: %v", entry.Name(), err)
		}

		if len(data) == 0 {
			t.Errorf("Migration %s is empty", entry.Name())
		}
	}
}
