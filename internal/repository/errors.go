package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by lookups and updates that reference a missing id.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}
