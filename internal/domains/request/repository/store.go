package repository

import (
	"context"

	"bookshare-backend/internal/domains/request"
	"bookshare-backend/internal/infrastructure/gateway"
	"bookshare-backend/internal/infrastructure/kvstore"
)

type storeRepository struct {
	requests *gateway.Collection[request.CollectionRequest]
}

func NewStoreRepository(store kvstore.Store) request.Repository {
	return &storeRepository{
		requests: gateway.NewCollection[request.CollectionRequest](store, gateway.KeyRequests),
	}
}

func (r *storeRepository) List(ctx context.Context) ([]request.CollectionRequest, error) {
	return r.requests.Load(ctx)
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*request.CollectionRequest, error) {
	records, err := r.requests.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, request.ErrRequestNotFound
}

func (r *storeRepository) Append(ctx context.Context, req *request.CollectionRequest) error {
	return r.requests.Update(ctx, func(records []request.CollectionRequest) ([]request.CollectionRequest, error) {
		return append(records, *req), nil
	})
}

func (r *storeRepository) Update(ctx context.Context, req *request.CollectionRequest) error {
	return r.requests.Update(ctx, func(records []request.CollectionRequest) ([]request.CollectionRequest, error) {
		for i := range records {
			if records[i].ID == req.ID {
				records[i] = *req
				return records, nil
			}
		}
		return nil, request.ErrRequestNotFound
	})
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	return r.requests.Update(ctx, func(records []request.CollectionRequest) ([]request.CollectionRequest, error) {
		for i := range records {
			if records[i].ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, request.ErrRequestNotFound
	})
}

func (r *storeRepository) CountActiveForBook(ctx context.Context, bookID string) (int, error) {
	records, err := r.requests.Load(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range records {
		if records[i].BookID != bookID {
			continue
		}
		switch records[i].Status {
		case request.StatusPending, request.StatusApproved:
			count++
		}
	}
	return count, nil
}
