package news

import (
	"context"

	domain "bizkit/internal/domain/news"
)

// Store persists news Item state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Item, error)
	Save(ctx context.Context, value domain.Item) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Item, error)
}
