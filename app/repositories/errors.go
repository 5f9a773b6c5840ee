// Package repositories holds the persistence layer. Each entity gets an
// interface plus a MongoDB implementation; services depend only on the
// interfaces so tests can swap in in-memory fakes.
package repositories

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)
