package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bizkit/internal/domain/project"
)

// ProjectStoreForOrchestrator defines the store interface needed by
// project orchestrators.
type ProjectStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (project.Project, error)
	Save(ctx context.Context, p project.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]project.Project, error)
}

// ProjectDeps holds dependencies for project orchestrators.
type ProjectDeps struct {
	ProjectStore ProjectStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// SaveProjectInput carries input for create and update. An empty
// ProjectID creates a new record.
type SaveProjectInput struct {
	ProjectID string
	Name      string
	Client    string
	Tag       string
	Progress  int
	StartDate time.Time
	EndDate   time.Time
	Avatar    string
}

func refetchProjects(ctx context.Context, deps ProjectDeps, opErr error) ([]project.Project, error) {
	items, err := deps.ProjectStore.List(ctx)
	if opErr != nil {
		return items, opErr
	}
	return items, err
}

// ExecuteSaveProject creates or updates a timeline project and returns
// the refreshed list.
// PRE: none
// POST: the refreshed list is returned even when the write fails
func ExecuteSaveProject(ctx context.Context, input SaveProjectInput, deps ProjectDeps) ([]project.Project, error) {
	p := project.Project{
		ID:        input.ProjectID,
		Name:      input.Name,
		Client:    input.Client,
		Tag:       input.Tag,
		Progress:  input.Progress,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Avatar:    input.Avatar,
	}

	if p.ID == "" {
		p.ID = deps.GenerateID()
		p.CreatedAt = deps.Now()
	} else {
		existing, err := deps.ProjectStore.GetByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = existing.CreatedAt
	}

	if err := p.Validate(); err != nil {
		return refetchProjects(ctx, deps, invalid(err))
	}
	if err := deps.ProjectStore.Save(ctx, p); err != nil {
		slog.Error("project_event", "event", "save_failed", "project_id", p.ID, "error", err)
		return refetchProjects(ctx, deps, err)
	}

	slog.Info("project_event", "event", "project_saved", "project_id", p.ID)
	return refetchProjects(ctx, deps, nil)
}

// ExecuteDeleteProject removes a project and returns the refreshed list.
// PRE: projectID names an existing project
// POST: the refreshed list is returned even when the delete fails
func ExecuteDeleteProject(ctx context.Context, projectID string, deps ProjectDeps) ([]project.Project, error) {
	if projectID == "" {
		return nil, invalid(errors.New("project ID is required"))
	}

	if _, err := deps.ProjectStore.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	if err := deps.ProjectStore.Delete(ctx, projectID); err != nil {
		slog.Error("project_event", "event", "delete_failed", "project_id", projectID, "error", err)
		return refetchProjects(ctx, deps, err)
	}

	slog.Info("project_event", "event", "project_deleted", "project_id", projectID)
	return refetchProjects(ctx, deps, nil)
}
