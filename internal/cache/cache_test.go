package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetOrCreate(t *testing.T) {
	c := New[string, int](0)

	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}
	for range 3 {
		v, err := c.GetOrCreate("a", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if v, ok := c.Get("a"); !ok || v != 42 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found a missing key")
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	c := New[string, int](0)
	boom := errors.New("boom")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("GetOrCreate() error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after a failed create", c.Len())
	}
	if v, err := c.GetOrCreate("k", func() (int, error) { return 7, nil }); err != nil || v != 7 {
		t.Errorf("retry = %d, %v", v, err)
	}
}

func TestCache_SoftLimitEvictsOldest(t *testing.T) {
	c := New[int, int](4)
	for i := range 4 {
		_, _ = c.GetOrCreate(i, func() (int, error) { return i, nil })
	}
	// Touch 0 so it survives eviction.
	c.Get(0)

	_, _ = c.GetOrCreate(4, func() (int, error) { return 4, nil })

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3 after eviction", c.Len())
	}
	if _, ok := c.Get(0); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.Get(4); !ok {
		t.Error("newest entry was evicted")
	}
	if _, ok := c.Get(1); ok {
		t.Error("least recently used entry survived")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](0)
	var calls atomic.Int64

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			for k := range 10 {
				_, _ = c.GetOrCreate(k, func() (int, error) {
					calls.Add(1)
					return k * k, nil
				})
			}
		})
	}
	wg.Wait()

	if calls.Load() != 10 {
		t.Errorf("create called %d times, want 10", calls.Load())
	}
}
