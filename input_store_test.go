package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

// exerciseInputStore runs the shared load/save contract against s.
func exerciseInputStore(t *testing.T, s inputStore) {
	t.Helper()
	ctx := context.Background()

	got, err := s.loadInputs(ctx, "client-a")
	if err != nil {
		t.Fatalf("load before save: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no inputs before save, got %v", got)
	}

	first := map[string]string{"gender": "male", "age": "30", "goal_weight": "180"}
	if err := s.saveInputs(ctx, "client-a", first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.saveInputs(ctx, "client-a", map[string]string{"goal_weight": "175.5"}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := s.saveInputs(ctx, "client-b", map[string]string{"gender": "female"}); err != nil {
		t.Fatalf("save other client: %v", err)
	}

	got, err = s.loadInputs(ctx, "client-a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]string{"gender": "male", "age": "30", "goal_weight": "175.5"}
	if len(got) != len(want) {
		t.Fatalf("inputs = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("inputs[%s] = %q, want %q", k, got[k], v)
		}
	}
}

func TestMemoryInputStore(t *testing.T) {
	exerciseInputStore(t, newMemoryInputStore(defaultMaxClients, defaultClientTTL))
}

// TestMemoryInputStore_LoadReturnsCopy verifies callers cannot mutate stored inputs.
func TestMemoryInputStore_LoadReturnsCopy(t *testing.T) {
	s := newMemoryInputStore(defaultMaxClients, defaultClientTTL)
	ctx := context.Background()
	s.saveInputs(ctx, "c", map[string]string{"age": "30"})

	got, _ := s.loadInputs(ctx, "c")
	got["age"] = "99"

	again, _ := s.loadInputs(ctx, "c")
	if again["age"] != "30" {
		t.Errorf("stored age = %q, want 30", again["age"])
	}
}

// TestMemoryInputStore_EvictsOldClients verifies the store holds at most
// maxClients clients, dropping the least recently used.
func TestMemoryInputStore_EvictsOldClients(t *testing.T) {
	s := newMemoryInputStore(2, defaultClientTTL)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.saveInputs(ctx, "client-"+strconv.Itoa(i), map[string]string{"age": strconv.Itoa(20 + i)})
	}

	if n := s.inputs.Len(); n != 2 {
		t.Errorf("clients held = %d, want 2", n)
	}
	if got, _ := s.loadInputs(ctx, "client-0"); len(got) != 0 {
		t.Errorf("expected client-0 evicted, got %v", got)
	}
	if got, _ := s.loadInputs(ctx, "client-4"); got["age"] != "24" {
		t.Errorf("client-4 inputs = %v, want age 24", got)
	}
}

func TestMemoryInputStore_ExpiresAfterTTL(t *testing.T) {
	s := newMemoryInputStore(defaultMaxClients, 20*time.Millisecond)
	ctx := context.Background()
	s.saveInputs(ctx, "client-a", map[string]string{"age": "30"})
	time.Sleep(60 * time.Millisecond)

	if got, _ := s.loadInputs(ctx, "client-a"); len(got) != 0 {
		t.Errorf("expected inputs to expire, got %v", got)
	}
}

func TestSQLiteInputStore(t *testing.T) {
	s, err := newSQLiteInputStore(filepath.Join(t.TempDir(), "inputs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.close()
	exerciseInputStore(t, s)
}

// TestSQLiteInputStore_Reopen verifies inputs survive closing the database.
func TestSQLiteInputStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.db")
	ctx := context.Background()

	s, err := newSQLiteInputStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.saveInputs(ctx, "client-a", map[string]string{"height_feet": "5"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.close()

	s, err = newSQLiteInputStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.close()
	got, err := s.loadInputs(ctx, "client-a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["height_feet"] != "5" {
		t.Errorf("height_feet = %q, want 5", got["height_feet"])
	}
}

func TestNewInputStore_Selection(t *testing.T) {
	ctx := context.Background()

	s, err := newInputStore(ctx, defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*memoryInputStore); !ok {
		t.Errorf("default store = %T, want *memoryInputStore", s)
	}

	cfg := defaultConfig()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "x.db")
	s, err = newInputStore(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.close()
	if _, ok := s.(*sqliteInputStore); !ok {
		t.Errorf("sqlite store = %T, want *sqliteInputStore", s)
	}

	cfg = defaultConfig()
	cfg.DBURL = "postgres://user@localhost:notaport/projection"
	if _, err := newInputStore(ctx, cfg); err == nil {
		t.Error("expected error for an unparseable DB URL")
	}
}

// TestPGInputStore runs the store contract against a live Postgres with the
// db/ migrations applied. Skipped unless DB_URL is set.
func TestPGInputStore(t *testing.T) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set")
	}
	ctx := context.Background()
	s, err := newPGInputStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.close() })

	clearClients := func() {
		if _, err := s.db.Exec(ctx,
			"DELETE FROM profile_inputs WHERE client_id IN ('client-a', 'client-b')"); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}
	clearClients()
	t.Cleanup(clearClients)

	exerciseInputStore(t, s)
}
