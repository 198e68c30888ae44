// Package storage implements the durable key/value backends the ledger
// persists its snapshot to.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("no value stored for key")
	ErrGeneral  = errors.New("an error occurred in the storage backend")
)

// Backend stores opaque blobs under string keys.
//
// A Backend holds whole values only. Callers always read and write the
// complete blob for a key.
type Backend interface {
	// Get returns the value stored for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
