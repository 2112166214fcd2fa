package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// profileInputRow maps to profile_inputs (selected columns only).
type profileInputRow struct {
	Field string `db:"field"`
	Value string `db:"value"`
}

// pgInputStore persists inputs in the profile_inputs table (see db/).
type pgInputStore struct {
	db *pgxpool.Pool
}

// newPGInputStore creates a connection pool for dbURL and checks it with a ping.
func newPGInputStore(ctx context.Context, dbURL string) (*pgInputStore, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB URL: %w", err)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &pgInputStore{db: pool}, nil
}

func (s *pgInputStore) loadInputs(ctx context.Context, clientID string) (map[string]string, error) {
	rows, err := queryMany[profileInputRow](s.db, ctx,
		"SELECT field, value FROM profile_inputs WHERE client_id = @clientID",
		pgx.NamedArgs{"clientID": clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to load inputs: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Field] = r.Value
	}
	return out, nil
}

// saveInputs upserts all fields in one transaction so a restored form never
// mixes values from two submissions.
func (s *pgInputStore) saveInputs(ctx context.Context, clientID string, fields map[string]string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, field := range slices.Sorted(maps.Keys(fields)) {
		_, err := tx.Exec(ctx,
			`INSERT INTO profile_inputs (client_id, field, value, updated_at)
			 VALUES (@clientID, @field, @value, NOW())
			 ON CONFLICT (client_id, field) DO UPDATE
			 SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			pgx.NamedArgs{"clientID": clientID, "field": field, "value": fields[field]})
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", field, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *pgInputStore) close() error {
	s.db.Close()
	return nil
}
