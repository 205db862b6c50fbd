package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS scenario_runs (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	spec       JSONB NOT NULL,
	impact     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`

// PostgresStore saves runs in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool for databaseURL and ensures the
// scenario_runs table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Save(ctx context.Context, record Record) error {
	spec, err := json.Marshal(record.Spec)
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}
	summary, err := json.Marshal(record.Impact)
	if err != nil {
		return fmt.Errorf("failed to marshal impact: %w", err)
	}

	query := `
		INSERT INTO scenario_runs (id, name, spec, impact, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			spec = EXCLUDED.spec,
			impact = EXCLUDED.impact;
	`
	if _, err := s.pool.Exec(ctx, query, record.ID, record.Name, spec, summary, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	query := `SELECT id, name, spec, impact, created_at FROM scenario_runs WHERE id = $1`
	record, err := scanRecord(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return record, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, name, spec, impact, created_at FROM scenario_runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		record  Record
		spec    []byte
		summary []byte
	)
	if err := row.Scan(&record.ID, &record.Name, &spec, &summary, &record.CreatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(spec, &record.Spec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal spec: %w", err)
	}
	if err := json.Unmarshal(summary, &record.Impact); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal impact: %w", err)
	}
	return record, nil
}
