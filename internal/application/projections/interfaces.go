package projections

import (
	"context"

	domainClient "bizkit/internal/domain/client"
	domainFollowUp "bizkit/internal/domain/followup"
	domainLead "bizkit/internal/domain/lead"
	domainNews "bizkit/internal/domain/news"
	domainProject "bizkit/internal/domain/project"
	domainTodo "bizkit/internal/domain/todo"
)

// FollowUpStore interface for follow-up queries.
type FollowUpStore interface {
	ListByUser(ctx context.Context, userID string) ([]domainFollowUp.FollowUp, error)
}

// TodoStore interface for todo queries.
type TodoStore interface {
	ListByUser(ctx context.Context, userID string) ([]domainTodo.Todo, error)
}

// ProjectStore interface for project queries.
type ProjectStore interface {
	List(ctx context.Context) ([]domainProject.Project, error)
}

// LeadStore interface for lead queries.
type LeadStore interface {
	ListByUser(ctx context.Context, userID string) ([]domainLead.Lead, error)
}

// ClientStore interface for client queries.
type ClientStore interface {
	List(ctx context.Context) ([]domainClient.Client, error)
}

// NewsStore interface for news queries.
type NewsStore interface {
	ListByUser(ctx context.Context, userID string) ([]domainNews.Item, error)
}
