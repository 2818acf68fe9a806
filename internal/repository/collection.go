package repository

import (
	"context"
	"sync"

	"tailorbook/internal/storage"
)

// collection guards the read-modify-write cycle of one stored sequence.
type collection[T any] struct {
	mu       sync.Mutex
	name     string
	key      string
	backend  storage.Backend
	notifier *Notifier
	idOf     func(T) string
}

func newCollection[T any](backend storage.Backend, notifier *Notifier, prefix, name string, idOf func(T) string) *collection[T] {
	return &collection[T]{
		name:     name,
		key:      prefix + name,
		backend:  backend,
		notifier: notifier,
		idOf:     idOf,
	}
}

func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	return storage.Load(ctx, c.backend, c.key, []T{})
}

func (c *collection[T]) get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.list(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if c.idOf(item) == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// mutate runs fn on the current contents under the collection lock and stores
// the result. fn reports whether anything changed; nothing is written otherwise.
func (c *collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, bool, error)) error {
	c.mu.Lock()
	changed, err := c.mutateLocked(ctx, fn)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if changed {
		c.notifier.Publish(c.name)
	}
	return nil
}

// mutateLocked is mutate without locking or notification; the caller holds c.mu.
func (c *collection[T]) mutateLocked(ctx context.Context, fn func([]T) ([]T, bool, error)) (bool, error) {
	items, err := c.list(ctx)
	if err != nil {
		return false, err
	}
	out, changed, err := fn(items)
	if err != nil || !changed {
		return false, err
	}
	if err := storage.Save(ctx, c.backend, c.key, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *collection[T]) prepend(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, bool, error) {
		out := make([]T, 0, len(items)+1)
		out = append(out, item)
		return append(out, items...), true, nil
	})
}

// update applies fn to the entity with id and returns the stored result.
func (c *collection[T]) update(ctx context.Context, entity, id string, fn func(*T)) (T, error) {
	var updated T
	err := c.mutate(ctx, func(items []T) ([]T, bool, error) {
		for i := range items {
			if c.idOf(items[i]) == id {
				fn(&items[i])
				updated = items[i]
				return items, true, nil
			}
		}
		return nil, false, notFound(entity, id)
	})
	return updated, err
}

func (c *collection[T]) remove(ctx context.Context, keep func(T) bool) error {
	return c.mutate(ctx, func(items []T) ([]T, bool, error) {
		return filter(items, keep)
	})
}

func filter[T any](items []T, keep func(T) bool) ([]T, bool, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, len(out) != len(items), nil
}
