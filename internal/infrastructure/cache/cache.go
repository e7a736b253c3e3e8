// Package cache provides the in-process TTL+LRU store backing the mapping
// and specification caches.  The engine runs single-process, so entries
// live in memory and are shared by value; eviction is by expiry, by
// capacity, and by a periodic sweep.
package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Options configures one store instance.
type Options struct {
	// TTL is the entry lifetime.  Zero disables expiry.
	TTL time.Duration

	// MaxEntries caps the store; the least recently used entry is evicted
	// at capacity.  Zero means unbounded.
	MaxEntries int

	// SweepInterval is how often expired entries are collected in the
	// background.  Zero disables the sweeper; expired entries are then
	// dropped lazily on access.
	SweepInterval time.Duration
}

// Stats is a point-in-time counter snapshot.
type Stats struct {
	Hits    int64
	Misses  int64
	Size    int
	Evicted int64
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	elem      *list.Element
}

// Store is a concurrency-safe TTL+LRU cache.  The zero value is not
// usable; construct with New.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	lru     *list.List

	opts    Options
	hits    atomic.Int64
	misses  atomic.Int64
	evicted atomic.Int64

	group singleflight.Group

	stopOnce sync.Once
	stop     chan struct{}

	// now is swappable for tests.
	now func() time.Time
}

// New constructs a store and starts its sweeper when configured.
func New[V any](opts Options) *Store[V] {
	s := &Store[V]{
		entries: make(map[string]*entry[V]),
		lru:     list.New(),
		opts:    opts,
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	if opts.SweepInterval > 0 {
		go s.sweepLoop()
	}
	return s
}

// Get returns the cached value for key, refreshing its recency.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.expired(e) {
		if ok {
			s.removeLocked(e)
		}
		s.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.MoveToFront(e.elem)
	s.hits.Add(1)
	return e.value, true
}

// Set stores the value under key, resetting its TTL.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		e.expiresAt = s.deadline()
		s.lru.MoveToFront(e.elem)
		return
	}
	e := &entry[V]{key: key, value: value, expiresAt: s.deadline()}
	e.elem = s.lru.PushFront(e)
	s.entries[key] = e

	if s.opts.MaxEntries > 0 && len(s.entries) > s.opts.MaxEntries {
		if oldest := s.lru.Back(); oldest != nil {
			s.removeLocked(oldest.Value.(*entry[V]))
			s.evicted.Add(1)
		}
	}
}

// GetOrCompute returns the cached value or computes, stores, and returns
// it.  Concurrent callers for the same key share one computation.
func (s *Store[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Delete removes key if present.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.removeLocked(e)
	}
}

// Purge drops every entry.
func (s *Store[V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry[V])
	s.lru.Init()
}

// Len returns the live entry count, ignoring not-yet-swept expired
// entries.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

// Stats returns the counter snapshot.
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	size := len(s.entries)
	s.mu.Unlock()
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Size:    size,
		Evicted: s.evicted.Load(),
	}
}

// Close stops the background sweeper.  The store stays usable.
func (s *Store[V]) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store[V]) sweepLoop() {
	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Store[V]) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if s.expired(e) {
			s.removeLocked(e)
		}
	}
}

func (s *Store[V]) expired(e *entry[V]) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

func (s *Store[V]) deadline() time.Time {
	if s.opts.TTL <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.opts.TTL)
}

func (s *Store[V]) removeLocked(e *entry[V]) {
	delete(s.entries, e.key)
	s.lru.Remove(e.elem)
}
