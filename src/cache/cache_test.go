package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("stats:BTC:true", 42)

	got, ok := c.Get("stats:BTC:true")
	if !ok {
		t.Fatalf("expected hit for fresh entry")
	}
	if got.(int) != 42 {
		t.Fatalf("value mismatch. got=%v want=42", got)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New(10, time.Minute)

	c.SetWithTTL("k", "v", -time.Second)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}

	stats := c.Stats()
	if stats.Size != 0 {
		t.Fatalf("expired entry should be removed on access, size=%d", stats.Size)
	}
}

func TestTTLCache_LRUEviction(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the least recently used.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected hit for a")
	}

	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to survive eviction")
	}
	if c.Stats().Evictions != 1 {
		t.Fatalf("eviction counter mismatch: %d", c.Stats().Evictions)
	}
}

func TestTTLCache_ClearAndDelete(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Fatalf("expected delete of existing key to report true")
	}
	if c.Delete("a") {
		t.Fatalf("expected delete of missing key to report false")
	}

	c.Clear()
	if c.Stats().Size != 0 {
		t.Fatalf("expected empty cache after Clear, size=%d", c.Stats().Size)
	}
}

func TestTTLCache_Purge(t *testing.T) {
	c := New(10, time.Minute)

	for i := 0; i < 3; i++ {
		c.SetWithTTL(fmt.Sprintf("old-%d", i), i, -time.Second)
	}
	c.Set("fresh", 1)

	if removed := c.Purge(); removed != 3 {
		t.Fatalf("expected 3 purged entries, got %d", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatalf("fresh entry must survive purge")
	}
}

func TestTTLCache_HitRate(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("missing")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 2 {
		t.Fatalf("counter mismatch: hits=%d misses=%d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 50 {
		t.Fatalf("hit rate mismatch. got=%v want=50", stats.HitRate)
	}
}
