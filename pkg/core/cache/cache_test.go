package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int](DefaultConfig())

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v", hits, misses, rate)
	}

	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := New[string](Config{MaxItems: 4, TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired too early")
	}

	now = now.Add(time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry returned")
	}
	if c.Size() != 0 {
		t.Error("expired entry not dropped")
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := New[int](Config{MaxItems: 2})
	c.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	c.Set("first", 1)
	c.Set("second", 2)
	c.Set("second", 22)
	if c.Size() != 2 {
		t.Fatalf("overwrite evicted an entry, size = %d", c.Size())
	}

	c.Set("third", 3)
	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry survived eviction")
	}
	if v, ok := c.Get("second"); !ok || v != 22 {
		t.Errorf("Get(second) = %d, %v", v, ok)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[int](DefaultConfig())
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := c.GetOrSet("x", compute)
	if err != nil || hit || v != 42 {
		t.Errorf("first GetOrSet = %d, %v, %v", v, hit, err)
	}
	v, hit, _ = c.GetOrSet("x", compute)
	if !hit || v != 42 || calls != 1 {
		t.Errorf("second GetOrSet = %d, hit %v, calls %d", v, hit, calls)
	}

	_, _, err = c.GetOrSet("y", func() (int, error) { return 0, errors.New("boom") })
	if err == nil || c.Size() != 1 {
		t.Errorf("failed compute stored a value, err = %v", err)
	}
}

func TestContentKey(t *testing.T) {
	a := ContentKey("void plastic red 0 0 5 1 1 1 0 0")
	if a != ContentKey("void plastic red 0 0 5 1 1 1 0 0") {
		t.Error("key is not stable")
	}
	if a == ContentKey("void plastic blue 0 0 5 1 1 1 0 0") {
		t.Error("different text produced the same key")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
}
