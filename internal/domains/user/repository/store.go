package repository

import (
	"context"

	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/infrastructure/gateway"
	"bookshare-backend/internal/infrastructure/kvstore"
)

// storeRepository keeps all users as one collection in the document
// store, mirroring the persisted layout the frontend variants used.
type storeRepository struct {
	users *gateway.Collection[user.User]
}

func NewStoreRepository(store kvstore.Store) user.Repository {
	return &storeRepository{
		users: gateway.NewCollection[user.User](store, gateway.KeyUsers),
	}
}

func (r *storeRepository) Create(ctx context.Context, u *user.User) error {
	return r.users.Update(ctx, func(records []user.User) ([]user.User, error) {
		for _, existing := range records {
			if existing.Email == u.Email {
				return nil, user.ErrEmailAlreadyExists
			}
		}
		return append(records, *u), nil
	})
}

func (r *storeRepository) Upsert(ctx context.Context, u *user.User) error {
	return r.users.Update(ctx, func(records []user.User) ([]user.User, error) {
		for i, existing := range records {
			if existing.ID == u.ID {
				records[i] = *u
				return records, nil
			}
		}
		return append(records, *u), nil
	})
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	records, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *storeRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	records, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Email == email {
			return &records[i], nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *storeRepository) List(ctx context.Context) ([]user.User, error) {
	return r.users.Load(ctx)
}
