package easythreads

import (
	"errors"
)

var (
	// ErrInvalidWorkers is returned by New when Options.Workers is
	// zero or negative. The cap is a configuration error, not a
	// defaultable value.
	ErrInvalidWorkers = errors.New("easythreads: workers must be positive")

	// ErrNilFunc is returned when a submitted Task has a nil Fn.
	ErrNilFunc = errors.New("easythreads: task func is nil")

	// ErrDuplicateName is returned when an explicitly named Task
	// collides with a record still held in the registry.
	ErrDuplicateName = errors.New("easythreads: duplicate task name")

	// ErrNotFound is returned by registry queries for unknown names.
	ErrNotFound = errors.New("easythreads: no such task")

	// ErrClosed is returned when submitting to a manager after
	// Shutdown or Stop.
	ErrClosed = errors.New("easythreads: manager closed")
)
