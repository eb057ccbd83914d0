package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps each collection as a single jsonb row. Whole-value
// upserts keep the replace-the-collection contract atomic per key.
//
// Expiring entries (sessions) carry their expiry both in the payload and
// in the expires_at column; the column lets stale rows be filtered on
// read without parsing the document.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the collections table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS collections (
			key        text PRIMARY KEY,
			data       jsonb NOT NULL,
			expires_at timestamptz,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create collections table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `
		SELECT data
		FROM collections
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`

	var data []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load collection %s: %w", key, err)
	}
	return data, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	const query = `
		INSERT INTO collections (key, data, expires_at, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key)
		DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	if _, err := s.pool.Exec(ctx, query, key, data, expiresAt); err != nil {
		return fmt.Errorf("save collection %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM collections WHERE key = ANY($1)`, keys); err != nil {
		return fmt.Errorf("delete collections: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
