package repository

import (
	"context"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/infrastructure/gateway"
	"bookshare-backend/internal/infrastructure/kvstore"
)

type storeRepository struct {
	books *gateway.Collection[book.Book]
}

func NewStoreRepository(store kvstore.Store) book.Repository {
	return &storeRepository{
		books: gateway.NewCollection[book.Book](store, gateway.KeyBooks),
	}
}

func (r *storeRepository) List(ctx context.Context) ([]book.Book, error) {
	return r.books.Load(ctx)
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	records, err := r.books.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *storeRepository) Append(ctx context.Context, b *book.Book) error {
	return r.books.Update(ctx, func(records []book.Book) ([]book.Book, error) {
		return append(records, *b), nil
	})
}

func (r *storeRepository) UpdateStatus(ctx context.Context, id string, status book.Status) error {
	return r.books.Update(ctx, func(records []book.Book) ([]book.Book, error) {
		for i := range records {
			if records[i].ID == id {
				records[i].Status = status
				return records, nil
			}
		}
		return nil, book.ErrBookNotFound
	})
}

func (r *storeRepository) Count(ctx context.Context) (int, error) {
	records, err := r.books.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
