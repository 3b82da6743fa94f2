package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgReadingColumns = "id, kind, name, value, unit, recorded_at"

// PostgresStore persists readings in a PostgreSQL readings table with the
// value column as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
	l    *slog.Logger
}

// NewPostgresStore creates a store backed by the given connection string.
// A failed initial ping is reported via ErrUnavailable but does not prevent
// construction; requests fail individually until connectivity is restored.
func NewPostgresStore(ctx context.Context, l *slog.Logger, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		l:    l.With(slog.String("component", "postgres-store")),
	}, nil
}

func (s *PostgresStore) Create(ctx context.Context, r Reading) (Reading, error) {
	applyCreateDefaults(&r)

	_, err := s.pool.Exec(ctx,
		"INSERT INTO readings (id, kind, name, value, unit, recorded_at) VALUES ($1, $2, $3, $4, $5, $6)",
		r.ID, r.Kind, r.Name, rawValueArg(r.Value), r.Unit, r.Timestamp,
	)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to insert reading: %w", err)
	}

	return r, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Reading, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+pgReadingColumns+" FROM readings WHERE id = $1", id)

	r, err := scanPgReading(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Reading{}, ErrNotFound
		}

		return Reading{}, fmt.Errorf("failed to get reading: %w", err)
	}

	return r, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Reading, error) {
	return s.query(ctx, "SELECT "+pgReadingColumns+" FROM readings")
}

func (s *PostgresStore) Search(ctx context.Context, f Filter) ([]Reading, error) {
	query := "SELECT " + pgReadingColumns + " FROM readings"

	var (
		conds []string
		args  []any
	)

	if f.Kind != nil {
		args = append(args, *f.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}

	if f.Name != nil {
		args = append(args, *f.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	return s.query(ctx, query, args...)
}

func (s *PostgresStore) Replace(ctx context.Context, r Reading) (Reading, error) {
	applyReplaceDefaults(&r)

	tag, err := s.pool.Exec(ctx,
		"UPDATE readings SET kind = $2, name = $3, value = $4, unit = $5, recorded_at = $6 WHERE id = $1",
		r.ID, r.Kind, r.Name, rawValueArg(r.Value), r.Unit, r.Timestamp,
	)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to update reading: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return Reading{}, ErrNotFound
	}

	return r, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (Reading, error) {
	row := s.pool.QueryRow(ctx,
		"DELETE FROM readings WHERE id = $1 RETURNING "+pgReadingColumns, id)

	r, err := scanPgReading(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Reading{}, ErrNotFound
		}

		return Reading{}, fmt.Errorf("failed to delete reading: %w", err)
	}

	return r, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()

	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Reading, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}

	defer rows.Close()

	readings := []Reading{}

	for rows.Next() {
		r, err := scanPgReading(rows)
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

func scanPgReading(row pgx.Row) (Reading, error) {
	var (
		r     Reading
		value []byte
	)

	if err := row.Scan(&r.ID, &r.Kind, &r.Name, &value, &r.Unit, &r.Timestamp); err != nil {
		return Reading{}, err
	}

	if len(value) > 0 {
		r.Value = value
	}

	return r, nil
}

// rawValueArg maps an absent value to SQL NULL instead of invalid empty JSON.
func rawValueArg(value []byte) any {
	if len(value) == 0 {
		return nil
	}

	return value
}
