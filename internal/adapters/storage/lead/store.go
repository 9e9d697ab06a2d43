package lead

import (
	"context"

	domain "bizkit/internal/domain/lead"
)

// Store persists Lead state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Lead, error)
	Save(ctx context.Context, value domain.Lead) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Lead, error)
}
