// Package kvstore provides the string-keyed document store backing the
// persistence gateway. Collections are stored whole, as opaque byte
// payloads, under namespaced keys.
package kvstore

import (
	"context"
	"time"
)

// Store is the contract every driver implements. A missing key is not an
// error: Load reports it with found=false.
type Store interface {
	// Load returns the payload stored under key, if any.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)

	// Save replaces the payload under key. A ttl of zero means the entry
	// never expires; drivers without native expiry may ignore ttl, in
	// which case callers enforce expiry from timestamps inside the
	// payload.
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the given keys. Deleting an absent key is a no-op.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
