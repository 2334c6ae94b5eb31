package database

import (
	"context"
	"errors"
)

// ErrClosed is returned by a store after Close.
var ErrClosed = errors.New("database: store is closed")

// KeyValueStore maps string keys to opaque serialized blobs.
// Read reports ok=false for a missing key. Delete of a missing key is not an error.
type KeyValueStore interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
