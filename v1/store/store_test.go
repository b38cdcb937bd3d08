package store

import (
	"bytes"
	"context"
	"testing"
)

// exercisePrimitives drives the five primitives through the states the lock
// algorithm depends on.
func exercisePrimitives(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if ok, err := s.Exists(ctx, "k"); err != nil || ok {
		t.Fatalf("exists on empty store: ok %v err %v", ok, err)
	}
	if _, found, err := s.Get(ctx, "k"); err != nil || found {
		t.Fatalf("get on empty store: found %v err %v", found, err)
	}

	if ok, err := s.SetIfAbsent(ctx, "k", []byte("a")); err != nil || !ok {
		t.Fatalf("first setifabsent: ok %v err %v", ok, err)
	}
	if ok, err := s.SetIfAbsent(ctx, "k", []byte("b")); err != nil || ok {
		t.Fatalf("second setifabsent should lose: ok %v err %v", ok, err)
	}
	if v, found, err := s.Get(ctx, "k"); err != nil || !found || !bytes.Equal(v, []byte("a")) {
		t.Fatalf("get after losing setifabsent: %q found %v err %v", v, found, err)
	}
	if ok, err := s.Exists(ctx, "k"); err != nil || !ok {
		t.Fatalf("exists after set: ok %v err %v", ok, err)
	}

	prev, found, err := s.GetSet(ctx, "k", []byte("c"))
	if err != nil || !found || !bytes.Equal(prev, []byte("a")) {
		t.Fatalf("getset previous: %q found %v err %v", prev, found, err)
	}
	if v, _, _ := s.Get(ctx, "k"); !bytes.Equal(v, []byte("c")) {
		t.Fatalf("getset did not replace, got %q", v)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, err := s.Exists(ctx, "k"); err != nil || ok {
		t.Fatalf("exists after delete: ok %v err %v", ok, err)
	}
	if prev, found, err := s.GetSet(ctx, "k2", []byte("x")); err != nil || found || prev != nil {
		t.Fatalf("getset on absent key: %q found %v err %v", prev, found, err)
	}
	if v, found, err := s.Get(ctx, "k2"); err != nil || !found || !bytes.Equal(v, []byte("x")) {
		t.Fatalf("getset should create absent key: %q found %v err %v", v, found, err)
	}
	if err := s.Delete(ctx, "k2"); err != nil {
		t.Fatalf("delete k2: %v", err)
	}
}

func TestMemoryPrimitives(t *testing.T) {
	exercisePrimitives(t, NewMemory())
}

func TestMemoryDeleteAbsentKey(t *testing.T) {
	s := NewMemory()
	if err := s.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
