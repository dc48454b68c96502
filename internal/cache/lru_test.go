package cache

import (
	"strconv"
	"sync"
	"testing"
)

// value returns a create func that records its calls.
func value(v int, calls *int) func() int {
	return func() int {
		*calls++
		return v
	}
}

func TestLRU_GetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0

	for range 3 {
		if v := c.GetOrCreate("k", value(42, &calls)); v != 42 {
			t.Fatalf("GetOrCreate = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 2/1", s.Hits, s.Misses)
	}
	if s.Len != 1 || s.Capacity != 10 {
		t.Errorf("Len/Capacity = %d/%d, want 1/10", s.Len, s.Capacity)
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := New[string, int](2)
	calls := 0

	c.GetOrCreate("a", value(1, &calls))
	c.GetOrCreate("b", value(2, &calls))
	c.GetOrCreate("a", value(1, &calls)) // "b" is now the oldest
	c.GetOrCreate("c", value(3, &calls))
	if calls != 3 {
		t.Fatalf("create called %d times, want 3", calls)
	}

	if v := c.GetOrCreate("a", value(-1, &calls)); v != 1 {
		t.Errorf("a = %d, want the cached 1", v)
	}
	if v := c.GetOrCreate("b", value(-2, &calls)); v != -2 {
		t.Errorf("b = %d, want it recreated after eviction", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if s := c.Stats(); s.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", s.Evictions)
	}
}

func TestLRU_Unlimited(t *testing.T) {
	c := New[int, int](0)
	calls := 0
	for i := range 100 {
		c.GetOrCreate(i, value(i, &calls))
	}
	if c.Len() != 100 {
		t.Errorf("Len = %d, want 100", c.Len())
	}
	if s := c.Stats(); s.Evictions != 0 {
		t.Errorf("Evictions = %d, want 0", s.Evictions)
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"empty", Stats{}, 0},
		{"half", Stats{Hits: 2, Misses: 2}, 50},
		{"all hits", Stats{Hits: 3}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.HitRate(); got != tt.want {
				t.Errorf("HitRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[int, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				k := (g*1000 + i) % 100
				c.GetOrCreate(k, func() int { return k })
			}
		}()
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func BenchmarkLRU_Hit(b *testing.B) {
	c := New[string, int](1000)
	for i := range 100 {
		c.GetOrCreate(strconv.Itoa(i), func() int { return i })
	}

	b.ResetTimer()
	for b.Loop() {
		c.GetOrCreate("50", func() int { return 0 })
	}
}

func BenchmarkLRU_GetOrCreate(b *testing.B) {
	c := New[string, int](64)
	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	i := 0
	for b.Loop() {
		c.GetOrCreate(keys[i%100], func() int { return i })
		i++
	}
}
