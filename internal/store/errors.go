package store

import "errors"

var (
	// ErrEmptyName is returned when a drawing is saved without a name.
	ErrEmptyName = errors.New("drawing name is empty")

	// ErrNotFound is returned when a drawing ID is not in the index.
	ErrNotFound = errors.New("drawing not found")
)
