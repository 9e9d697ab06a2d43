package todo

import (
	"context"

	domain "bizkit/internal/domain/todo"
)

// Store persists Todo state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Todo, error)
	Save(ctx context.Context, value domain.Todo) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
}
