package cache

import (
	"testing"
	"time"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	c := NewInMemoryCache(3600)

	if err := c.Set("page:da_DK:abc", `[{"source":"Welcome","target":"Velkommen"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get("page:da_DK:abc")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if val != `[{"source":"Welcome","target":"Velkommen"}]` {
		t.Errorf("Unexpected value: %q", val)
	}
}

func TestInMemoryCache_Miss(t *testing.T) {
	c := NewInMemoryCache(3600)

	val, ok := c.Get("missing")
	if ok {
		t.Error("Expected cache miss")
	}
	if val != "" {
		t.Errorf("Expected empty string, got %q", val)
	}
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache(1)
	c.Set("key", "value")

	// Backdate the entry instead of sleeping
	c.mu.Lock()
	entry := c.cache["key"]
	entry.timestamp = time.Now().Add(-2 * time.Second)
	c.cache["key"] = entry
	c.mu.Unlock()

	if _, ok := c.Get("key"); ok {
		t.Error("Expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be evicted, Len() = %d", c.Len())
	}
}

func TestInMemoryCache_NoExpiration(t *testing.T) {
	c := NewInMemoryCache(0)
	c.Set("key", "value")

	c.mu.Lock()
	entry := c.cache["key"]
	entry.timestamp = time.Now().Add(-24 * time.Hour)
	c.cache["key"] = entry
	c.mu.Unlock()

	if _, ok := c.Get("key"); !ok {
		t.Error("Entry with ttl=0 should never expire")
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	c := NewInMemoryCache(0)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, Len() = %d", c.Len())
	}
}

func TestInMemoryCache_Entries(t *testing.T) {
	c := NewInMemoryCache(0)
	c.Set("a", "1")
	c.Set("b", "2")

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries["a"] != "1" || entries["b"] != "2" {
		t.Errorf("Unexpected entries: %v", entries)
	}
}
