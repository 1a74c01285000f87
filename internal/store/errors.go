package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("recipe not found")
	ErrDuplicateID     = errors.New("a recipe with this id already exists")
	ErrDuplicateSlug   = errors.New("a recipe with this slug already exists")
	ErrVersionMismatch = errors.New("recipe collection has changed")
	ErrPersistence     = errors.New("persisting recipes failed")
)

// PersistenceError reports a failed load or save of the collection. When it
// is returned from a write, the in-memory collection is unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s recipes: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
