package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// slot is the unit stored in the recency list. A zero expiry never runs out.
type slot[V any] struct {
	expiry time.Time
	value  V
	key    string
}

func (s *slot[V]) live(now time.Time) bool {
	return s.expiry.IsZero() || !now.After(s.expiry)
}

// Memory is an in-memory cache with TTL expiration and optional LRU
// eviction when a maximum entry count is configured.
//
// A map gives O(1) lookups; a doubly-linked list keeps recency order with
// the most recently used entry at the front.
type Memory[V any] struct {
	index   map[string]*list.Element
	recency *list.List
	opts    *memoryOptions
	evictFn func(key string, value V)
	stop    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithCleanupInterval(30 * time.Second),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		index:   make(map[string]*list.Element),
		recency: list.New(),
		opts:    o,
		stop:    make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.sweepLoop(o.cleanupInterval)
	}
	return m
}

// SetEvictCallback registers a function called whenever an entry leaves the
// cache: LRU eviction, expiration cleanup, Delete and Clear all trigger it.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictFn = fn
}

// lookup finds a live entry, dropping it on the spot when it has expired.
// Caller holds the mutex.
func (m *Memory[V]) lookup(key string) (*list.Element, bool) {
	elem, ok := m.index[key]
	if !ok {
		return nil, false
	}
	if !elem.Value.(*slot[V]).live(time.Now()) {
		m.drop(elem)
		return nil, false
	}
	return elem, true
}

// Get retrieves a value by key and marks it as recently used.
// Returns ErrNotFound if the key does not exist or has expired.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.lookup(key)
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	m.recency.MoveToFront(elem)
	return elem.Value.(*slot[V]).value, nil
}

// Set stores a value. A positive ttl expires the entry after that duration,
// zero applies the cache's default TTL, negative means never expire.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	expiry := m.deadline(ttl)

	if elem, ok := m.index[key]; ok {
		s := elem.Value.(*slot[V])
		s.value, s.expiry = value, expiry
		m.recency.MoveToFront(elem)
		return nil
	}

	// Make room before inserting, dropping from the cold end.
	if limit := m.opts.maxEntries; limit > 0 && len(m.index) >= limit {
		if tail := m.recency.Back(); tail != nil {
			m.drop(tail)
		}
	}
	m.index[key] = m.recency.PushFront(&slot[V]{key: key, value: value, expiry: expiry})
	return nil
}

// deadline resolves the per-call ttl: positive expires after the duration,
// zero adopts the default, negative pins the entry forever.
func (m *Memory[V]) deadline(ttl time.Duration) time.Time {
	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	if ttl > 0 {
		return time.Now().Add(ttl)
	}
	return time.Time{}
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.index[key]; ok {
		m.drop(elem)
	}
	return nil
}

// Has reports whether a live entry exists, without touching its recency.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lookup(key)
	return ok, nil
}

// Clear removes all entries from the cache.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.evictFn != nil {
		for _, elem := range m.index {
			s := elem.Value.(*slot[V])
			m.evictFn(s.key, s.value)
		}
	}
	m.index = make(map[string]*list.Element)
	m.recency.Init()
	return nil
}

// Close stops the sweeper and rejects further writes. Idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

// sweep walks the list from the cold end, where expired entries cluster.
func (m *Memory[V]) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for elem := m.recency.Back(); elem != nil; {
		prev := elem.Prev()
		if !elem.Value.(*slot[V]).live(now) {
			m.drop(elem)
		}
		elem = prev
	}
}

// drop unlinks an entry and fires the eviction callback. Caller holds the
// mutex.
func (m *Memory[V]) drop(elem *list.Element) {
	s := elem.Value.(*slot[V])
	m.recency.Remove(elem)
	delete(m.index, s.key)
	if m.evictFn != nil {
		m.evictFn(s.key, s.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
