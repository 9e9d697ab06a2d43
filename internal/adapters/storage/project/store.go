package project

import (
	"context"

	domain "bizkit/internal/domain/project"
)

// Store persists Project state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Project, error)
	Save(ctx context.Context, value domain.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Project, error)
}
