package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"plptask/internal/kv"
)

func TestSQLite_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	s, err := kv.OpenSQLite(ctx, filepath.Join(t.TempDir(), "store.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Get(ctx, "plp-tasks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestSQLite_SetOverwritesAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := kv.OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := kv.OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != "dark" {
		t.Errorf("expected dark, got %q (ok=%v)", got, ok)
	}
}

func TestMemory_InjectedErrors(t *testing.T) {
	m := kv.NewMemory()
	m.SetErr = context.DeadlineExceeded
	if err := m.Set(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected error")
	}
	if m.Writes != 0 {
		t.Errorf("expected 0 writes, got %d", m.Writes)
	}
}
