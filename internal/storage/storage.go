// Package storage defines the durable key-value medium the persistence layer
// is built on. Values are opaque text; the medium never inspects them.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by media used after Close
var ErrClosed = errors.New("storage: medium closed")

// Medium is a string-keyed get/set/remove/clear store.
type Medium interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for absent keys.
	Remove(ctx context.Context, key string) error
	// Clear removes every key owned by the medium.
	Clear(ctx context.Context) error
	// Keys lists keys starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
