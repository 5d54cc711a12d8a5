package cache

import (
	"context"
	"testing"
	"time"
)

func TestLRUCacheBasic(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Fatalf("empty cache should miss")
	}

	c.Set("a", "1")
	if v, found := c.Get("a"); !found || v != "1" {
		t.Fatalf("expected hit with %q, got %q/%v", "1", v, found)
	}

	c.Set("a", "2")
	if v, _ := c.Get("a"); v != "2" {
		t.Fatalf("set should overwrite, got %q", v)
	}
	if c.Size() != 1 {
		t.Fatalf("overwrite must not grow the cache, size %d", c.Size())
	}

	c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Fatalf("deleted key should miss")
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the oldest.
	c.Get("a")
	c.Set("c", 3)

	if _, found := c.Get("b"); found {
		t.Fatalf("least recently used entry should be evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Fatalf("recently used entry should survive")
	}
	if _, found := c.Get("c"); !found {
		t.Fatalf("new entry should be present")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("a"); found {
		t.Fatalf("expired entry should miss")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("fresh", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if c.Size() != 1 {
		t.Fatalf("expected only the fresh entry, size %d", c.Size())
	}
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](10, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run should return nil on cancel, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
