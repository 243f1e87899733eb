package voicesdk

import (
	"context"
	"sync"
)

// ListCache holds a local copy of a server-side list and supports
// optimistic mutations: the local copy is updated first, the server call
// runs after, and a failed call rolls the copy back to the pre-mutation
// snapshot. Either way the list is re-fetched afterwards, so the cache
// converges on the server state even when the optimistic guess was wrong.
type ListCache[T any] struct {
	mu    sync.Mutex
	items []T
	fetch func(ctx context.Context) ([]T, error)
}

// NewListCache creates a cache backed by the given fetch function.
func NewListCache[T any](fetch func(ctx context.Context) ([]T, error)) *ListCache[T] {
	return &ListCache[T]{fetch: fetch}
}

// Items returns a copy of the cached list.
func (c *ListCache[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

// Refresh replaces the cached list with the server's.
func (c *ListCache[T]) Refresh(ctx context.Context) error {
	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Mutate applies the local update, runs the server call, and rolls back on
// failure. The list is re-fetched afterwards regardless of the outcome; a
// refetch failure is not reported so the mutation's own error stands.
func (c *ListCache[T]) Mutate(ctx context.Context, apply func(items []T) []T, commit func(ctx context.Context) error) error {
	c.mu.Lock()
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	c.items = apply(c.items)
	c.mu.Unlock()

	err := commit(ctx)
	if err != nil {
		c.mu.Lock()
		c.items = snapshot
		c.mu.Unlock()
	}

	if items, fetchErr := c.fetch(ctx); fetchErr == nil {
		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
	}

	return err
}
