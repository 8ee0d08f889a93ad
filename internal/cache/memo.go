// Package cache provides the lookup caches used while gathering analysis
// inputs.
package cache

import (
	"context"
	"sync"
)

// Memo deduplicates lookups by key for the lifetime of one analysis. Create
// a new Memo per orchestration call; it is never shared across games.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*memoEntry[V]
}

type memoEntry[V any] struct {
	once  sync.Once
	value V
	err   error
}

func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{entries: make(map[K]*memoEntry[V])}
}

// Get returns the cached result for key, calling fetch at most once per key
// even under concurrent callers. Errors are cached too.
func (m *Memo[K, V]) Get(ctx context.Context, key K, fetch func(context.Context) (V, error)) (V, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &memoEntry[V]{}
		m.entries[key] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.value, entry.err = fetch(ctx)
	})
	return entry.value, entry.err
}

func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
