package client

import (
	"context"

	domain "bizkit/internal/domain/client"
)

// Store persists Client state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Client, error)
	Save(ctx context.Context, value domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Client, error)
}
