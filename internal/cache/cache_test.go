// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package cache

import (
	"sync"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()

	c := New[string](time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()

	c := New[string](100 * time.Millisecond)
	c.Set("key1", "value1")

	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	c := New[int](0)
	c.Set("k", 7)
	time.Sleep(20 * time.Millisecond)

	if v, ok := c.Get("k"); !ok || v != 7 {
		t.Errorf("Get = (%d, %v), want (7, true)", v, ok)
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	t.Parallel()

	c := New[string](time.Hour)
	c.SetWithTTL("short", "v", 50*time.Millisecond)
	c.Set("long", "v")

	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Expected short-lived entry to expire")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("Expected default-TTL entry to survive")
	}
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	c := New[string](time.Minute)
	c.Set("key1", "value1")

	if !c.Delete("key1") {
		t.Error("Delete should report an existing key")
	}
	if c.Delete("key1") {
		t.Error("Delete should report a missing key")
	}
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheReplace(t *testing.T) {
	t.Parallel()

	c := New[int](0)
	c.Set("old", 1)
	c.Replace(map[string]int{"b": 2, "a": 1, "c": 3})

	if _, ok := c.Get("old"); ok {
		t.Error("Replace should drop keys missing from the new set")
	}
	got := c.Values()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Values len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values[%d] = %d, want %d (ordered by key)", i, got[i], want[i])
		}
	}
	if c.GetStats().TotalKeys != 3 {
		t.Errorf("TotalKeys = %d, want 3", c.GetStats().TotalKeys)
	}
}

func TestCacheClear(t *testing.T) {
	t.Parallel()

	c := New[string](time.Minute)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", stats.Evictions)
	}
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", stats.TotalKeys)
	}
}

func TestCacheValuesSkipsExpired(t *testing.T) {
	t.Parallel()

	c := New[string](time.Hour)
	c.Set("live", "x")
	c.SetWithTTL("dead", "y", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	got := c.Values()
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("Values = %v, want [x]", got)
	}
}

func TestCacheHitRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hits   int
		misses int
		want   float64
	}{
		{"no operations", 0, 0, 0},
		{"only misses", 0, 4, 0},
		{"only hits", 3, 0, 100},
		{"mixed", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New[string](time.Minute)
			c.Set("k", "v")
			for i := 0; i < tt.hits; i++ {
				c.Get("k")
			}
			for i := 0; i < tt.misses; i++ {
				c.Get("missing")
			}
			if got := c.HitRate(); got != tt.want {
				t.Errorf("HitRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()

	c := New[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("key", id)
				c.Get("key")
				c.Values()
				if j%10 == 0 {
					c.Delete("key")
				}
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits == 0 && stats.Misses == 0 {
		t.Error("Expected some cache activity from concurrent operations")
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := New[string](time.Minute)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set("key", "value")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string](time.Minute)
	c.Set("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}
