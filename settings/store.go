// Package settings provides hot-reloadable, typed extension settings for
// kilozed hosts. Settings live in a TOML file at the worktree root and are
// re-read when the file changes on disk.
package settings

import (
	"sync"
	"sync/atomic"
)

// Store holds the current settings value with atomic read/swap semantics.
// Reads never take a lock.
type Store[T any] struct {
	value atomic.Pointer[T]

	mu        sync.RWMutex
	listeners []func(old, updated *T)
}

// NewStore creates a store seeded with the given value.
func NewStore[T any](initial *T) *Store[T] {
	s := &Store[T]{}
	s.value.Store(initial)
	return s
}

// Get returns the current settings value.
func (s *Store[T]) Get() *T {
	return s.value.Load()
}

// Swap atomically replaces the settings and notifies listeners in
// registration order.
func (s *Store[T]) Swap(updated *T) *T {
	old := s.value.Swap(updated)

	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(old, updated)
	}
	return old
}

// OnChange registers a listener invoked on every Swap.
func (s *Store[T]) OnChange(fn func(old, updated *T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
