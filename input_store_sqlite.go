package main

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteInputStore persists inputs in a local SQLite file. Same schema as
// the Postgres store.
type sqliteInputStore struct {
	db *sql.DB
}

func newSQLiteInputStore(dbPath string) (*sqliteInputStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &sqliteInputStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *sqliteInputStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS profile_inputs (
        client_id TEXT NOT NULL,
        field TEXT NOT NULL,
        value TEXT NOT NULL,
        updated_at DATETIME NOT NULL,
        PRIMARY KEY (client_id, field)
    );
    `
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *sqliteInputStore) loadInputs(ctx context.Context, clientID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT field, value FROM profile_inputs WHERE client_id = ?", clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inputs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan input: %w", err)
		}
		out[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return out, nil
}

func (s *sqliteInputStore) saveInputs(ctx context.Context, clientID string, fields map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
        INSERT INTO profile_inputs (client_id, field, value, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (client_id, field) DO UPDATE
        SET value = excluded.value, updated_at = excluded.updated_at
    `
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		if _, err := tx.ExecContext(ctx, query, clientID, field, fields[field], now); err != nil {
			return fmt.Errorf("failed to save %s: %w", field, err)
		}
	}

	return tx.Commit()
}

func (s *sqliteInputStore) close() error {
	return s.db.Close()
}
