// Package gateway implements the persistence gateway: typed access to
// whole collections kept as JSON arrays in the underlying document store.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bookshare-backend/internal/infrastructure/kvstore"
)

// ErrCorruptData marks a collection whose stored payload no longer
// decodes. Callers get it wrapped with the offending key.
var ErrCorruptData = errors.New("corrupt collection data")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal and Unmarshal expose the gateway's serializer for callers that
// store single records instead of collections (session markers).
func Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

// Collection is a typed view over one stored collection. Load decodes the
// whole array, Save atomically replaces it. Timestamps round-trip through
// RFC 3339 encoding, including those nested in denormalized snapshots, so
// loaded records carry real time values rather than strings.
type Collection[T any] struct {
	store kvstore.Store
	key   string
	mu    sync.Mutex
}

func NewCollection[T any](store kvstore.Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Load returns every record in the collection in insertion order. A
// missing collection is an empty one, never an error.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, found, err := c.store.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !found {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, c.key, err)
	}
	return records, nil
}

// Save replaces the whole collection.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Save(ctx, c.key, raw, 0); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Update runs fn over the current records and persists its result.
// The read-modify-write cycle is serialized per collection, so concurrent
// handlers cannot interleave writes. When fn returns an error nothing is
// persisted.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.Load(ctx)
	if err != nil {
		return err
	}

	records, err = fn(records)
	if err != nil {
		return err
	}

	return c.Save(ctx, records)
}

// Expiry returns the remaining lifetime for a record that must expire at
// the given instant, clamped to a minimum of one second so a record that
// is about to lapse still reaches the store.
func Expiry(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
