package followup

import (
	"context"

	domain "bizkit/internal/domain/followup"
)

// Store persists FollowUp state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.FollowUp, error)
	Save(ctx context.Context, value domain.FollowUp) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.FollowUp, error)
}
