// Package storage holds the durable key/document layer every repository writes through.
//
// A Backend stores one serialized collection per key. Repositories read the whole
// collection, modify it in memory and write it back under the same key.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// ErrUnavailable is matched by every failure coming out of a Backend.
var ErrUnavailable = errors.New("storage unavailable")

// Error describes a failed backend operation on a single key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrUnavailable }

type Backend interface {
	// Get returns the raw stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put fully replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Lookup decodes the value stored under key. The boolean is false when the key
// is absent or its payload cannot be decoded; a corrupt payload is logged, not returned.
func Lookup[T any](ctx context.Context, b Backend, key string) (T, bool, error) {
	var value T
	raw, ok, err := b.Get(ctx, key)
	if err != nil {
		return value, false, &Error{Op: "load", Key: key, Err: err}
	}
	if !ok || len(raw) == 0 {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("Error reading %s from storage, using default: %v", key, err)
		var zero T
		return zero, false, nil
	}
	return value, true, nil
}

// Load returns the value stored under key, or def when it is absent or corrupt.
func Load[T any](ctx context.Context, b Backend, key string, def T) (T, error) {
	value, ok, err := Lookup[T](ctx, b, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

// Save serializes value and replaces whatever was stored under key.
func Save[T any](ctx context.Context, b Backend, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error writing %s to storage: %v", key, err)
		return &Error{Op: "encode", Key: key, Err: err}
	}
	if err := b.Put(ctx, key, raw); err != nil {
		log.Printf("Error writing %s to storage: %v", key, err)
		return &Error{Op: "save", Key: key, Err: err}
	}
	return nil
}
