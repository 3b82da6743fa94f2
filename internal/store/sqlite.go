package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteReadingColumns = "id, kind, name, value, unit, recorded_at"

// SQLiteStore persists readings in a local SQLite database. Timestamps are
// stored as RFC 3339 strings, the value column as serialized JSON text.
type SQLiteStore struct {
	db *sql.DB
	l  *slog.Logger
}

// NewSQLiteStore opens (or creates) the database file at path.
func NewSQLiteStore(l *slog.Logger, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteStore{
		db: db,
		l:  l.With(slog.String("component", "sqlite-store")),
	}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, r Reading) (Reading, error) {
	applyCreateDefaults(&r)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO readings (id, kind, name, value, unit, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.Kind, r.Name, sqliteValueArg(r.Value), r.Unit, r.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to insert reading: %w", err)
	}

	return r, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Reading, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sqliteReadingColumns+" FROM readings WHERE id = ?", id)

	r, err := scanSQLiteReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reading{}, ErrNotFound
		}

		return Reading{}, fmt.Errorf("failed to get reading: %w", err)
	}

	return r, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Reading, error) {
	return s.query(ctx, "SELECT "+sqliteReadingColumns+" FROM readings")
}

func (s *SQLiteStore) Search(ctx context.Context, f Filter) ([]Reading, error) {
	query := "SELECT " + sqliteReadingColumns + " FROM readings"

	var (
		conds []string
		args  []any
	)

	if f.Kind != nil {
		conds = append(conds, "kind = ?")
		args = append(args, *f.Kind)
	}

	if f.Name != nil {
		conds = append(conds, "name = ?")
		args = append(args, *f.Name)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	return s.query(ctx, query, args...)
}

func (s *SQLiteStore) Replace(ctx context.Context, r Reading) (Reading, error) {
	applyReplaceDefaults(&r)

	res, err := s.db.ExecContext(ctx,
		"UPDATE readings SET kind = ?, name = ?, value = ?, unit = ?, recorded_at = ? WHERE id = ?",
		r.Kind, r.Name, sqliteValueArg(r.Value), r.Unit, r.Timestamp.Format(time.RFC3339Nano), r.ID,
	)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to update reading: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Reading{}, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return Reading{}, ErrNotFound
	}

	return r, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) (Reading, error) {
	row := s.db.QueryRowContext(ctx,
		"DELETE FROM readings WHERE id = ? RETURNING "+sqliteReadingColumns, id)

	r, err := scanSQLiteReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reading{}, ErrNotFound
		}

		return Reading{}, fmt.Errorf("failed to delete reading: %w", err)
	}

	return r, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]Reading, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}

	defer rows.Close()

	readings := []Reading{}

	for rows.Next() {
		r, err := scanSQLiteReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}

		readings = append(readings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}

	return readings, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteReading(row rowScanner) (Reading, error) {
	var (
		r          Reading
		value      sql.NullString
		recordedAt string
	)

	if err := row.Scan(&r.ID, &r.Kind, &r.Name, &value, &r.Unit, &recordedAt); err != nil {
		return Reading{}, err
	}

	if value.Valid && value.String != "" {
		r.Value = []byte(value.String)
	}

	ts, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to parse recorded_at: %w", err)
	}

	r.Timestamp = ts

	return r, nil
}

func sqliteValueArg(value []byte) any {
	if len(value) == 0 {
		return nil
	}

	return string(value)
}
