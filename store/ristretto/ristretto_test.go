package ristretto

import (
	"testing"
)

func newTestStore(t *testing.T) *Store[string, int] {
	t.Helper()
	s, err := New[string, int](Config{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGet(t *testing.T) {
	s := newTestStore(t)

	if !s.Set("k", 42, 1) {
		t.Fatalf("Set rejected")
	}
	s.Wait()

	got, ok := s.Get("k")
	if !ok || got != 42 {
		t.Fatalf("Get = %d, %v; want 42, true", got, ok)
	}
	if _, ok := s.Get("absent"); ok {
		t.Fatalf("hit on absent key")
	}
}

func TestDel(t *testing.T) {
	s := newTestStore(t)

	s.Set("k", 1, 1)
	s.Wait()
	s.Del("k")
	s.Wait()

	if _, ok := s.Get("k"); ok {
		t.Fatalf("deleted key still present")
	}
}

func TestNewValidatesConfig(t *testing.T) {
	cases := []Config{
		{NumCounters: 0, MaxCost: 1, BufferItems: 1},
		{NumCounters: 1, MaxCost: 0, BufferItems: 1},
		{NumCounters: 1, MaxCost: 1, BufferItems: 0},
	}
	for _, cfg := range cases {
		if _, err := New[string, int](cfg); err == nil {
			t.Fatalf("expected error for config %+v", cfg)
		}
	}
}
