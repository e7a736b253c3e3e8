package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := New[int](Options{})
	defer s.Close()

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("a", 1)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestStore_TTLExpiry(t *testing.T) {
	s := New[string](Options{TTL: time.Minute})
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Set("k", "v")

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_SetRefreshesTTL(t *testing.T) {
	s := New[string](Options{TTL: time.Minute})
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Set("k", "v1")

	s.now = func() time.Time { return base.Add(50 * time.Second) }
	s.Set("k", "v2")

	s.now = func() time.Time { return base.Add(100 * time.Second) }
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStore_LRUEviction(t *testing.T) {
	s := New[int](Options{MaxEntries: 2})
	defer s.Close()

	s.Set("a", 1)
	s.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := s.Get("a")
	require.True(t, ok)

	s.Set("c", 3)
	_, ok = s.Get("b")
	assert.False(t, ok)
	_, ok = s.Get("a")
	assert.True(t, ok)
	_, ok = s.Get("c")
	assert.True(t, ok)
	assert.Equal(t, int64(1), s.Stats().Evicted)
}

func TestStore_Sweep(t *testing.T) {
	s := New[int](Options{TTL: time.Minute})
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Set("a", 1)
	s.Set("b", 2)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	s.sweep()
	assert.Equal(t, 0, s.Stats().Size)
}

func TestStore_GetOrCompute_SharesOneComputation(t *testing.T) {
	s := New[int](Options{})
	defer s.Close()

	var calls int
	var mu sync.Mutex
	compute := func(context.Context) (int, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.GetOrCompute(context.Background(), "k", compute)
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestStore_GetOrCompute_ErrorNotCached(t *testing.T) {
	s := New[int](Options{})
	defer s.Close()

	boom := errors.New("boom")
	_, err := s.GetOrCompute(context.Background(), "k", func(context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	v, err := s.GetOrCompute(context.Background(), "k", func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestStore_DeleteAndPurge(t *testing.T) {
	s := New[int](Options{})
	defer s.Close()

	s.Set("a", 1)
	s.Set("b", 2)
	s.Delete("a")
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Purge()
	assert.Equal(t, 0, s.Len())
}
