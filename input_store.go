package main

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// inputStore recalls a client's last accepted submission, keyed by field
// name. It is written only after a successful validate + project cycle.
type inputStore interface {
	// loadInputs returns the saved fields, or an empty map if none exist.
	loadInputs(ctx context.Context, clientID string) (map[string]string, error)
	// saveInputs upserts every field in fields for clientID.
	saveInputs(ctx context.Context, clientID string, fields map[string]string) error
	close() error
}

// newInputStore picks the store for cfg: Postgres when a DB URL is set,
// then SQLite when a file path is set, otherwise process memory.
func newInputStore(ctx context.Context, cfg Config) (inputStore, error) {
	switch {
	case cfg.DBURL != "":
		s, err := newPGInputStore(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres input store: %w", err)
		}
		return s, nil
	case cfg.SQLitePath != "":
		s, err := newSQLiteInputStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite input store: %w", err)
		}
		return s, nil
	default:
		return newMemoryInputStore(cfg.MaxClients, cfg.ClientTTL), nil
	}
}

// memoryInputStore keeps inputs in process memory for up to maxClients
// clients, evicting the least recently used and anything not saved within ttl.
type memoryInputStore struct {
	mu     sync.Mutex // serializes read-merge-write in saveInputs
	inputs *expirable.LRU[string, map[string]string]
}

func newMemoryInputStore(maxClients int, ttl time.Duration) *memoryInputStore {
	return &memoryInputStore{
		inputs: expirable.NewLRU[string, map[string]string](maxClients, nil, ttl),
	}
}

// loadInputs returns a copy; stored maps are never mutated after Add.
func (s *memoryInputStore) loadInputs(_ context.Context, clientID string) (map[string]string, error) {
	saved, _ := s.inputs.Get(clientID)
	out := make(map[string]string, len(saved))
	maps.Copy(out, saved)
	return out, nil
}

func (s *memoryInputStore) saveInputs(_ context.Context, clientID string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, _ := s.inputs.Peek(clientID)
	merged := make(map[string]string, len(prev)+len(fields))
	maps.Copy(merged, prev)
	maps.Copy(merged, fields)
	s.inputs.Add(clientID, merged)
	return nil
}

func (s *memoryInputStore) close() error { return nil }
