package repository

import (
	"context"
	"fmt"

	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/infrastructure/gateway"
	"bookshare-backend/internal/infrastructure/kvstore"
)

// sessionRepository stores one record per token. Expiry is enforced both
// by the store (drivers with native TTL) and by the ExpiresAt check on
// read, so the memory and postgres drivers behave like the redis one.
type sessionRepository struct {
	store kvstore.Store
}

func NewSessionRepository(store kvstore.Store) user.SessionRepository {
	return &sessionRepository{store: store}
}

func sessionKey(token string) string {
	return gateway.KeySessionPrefix + token
}

func (r *sessionRepository) Put(ctx context.Context, s user.Session) error {
	raw, err := gateway.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.store.Save(ctx, sessionKey(s.Token), raw, gateway.Expiry(s.ExpiresAt))
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*user.Session, error) {
	raw, found, err := r.store.Load(ctx, sessionKey(token))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, user.ErrSessionNotFound
	}

	var s user.Session
	if err := gateway.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired() {
		_ = r.store.Delete(ctx, sessionKey(token))
		return nil, user.ErrSessionExpired
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.store.Delete(ctx, sessionKey(token))
}
