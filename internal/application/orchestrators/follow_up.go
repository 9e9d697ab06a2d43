package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bizkit/internal/domain/followup"
)

// FollowUpStoreForOrchestrator defines the store interface needed by
// follow-up orchestrators.
type FollowUpStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (followup.FollowUp, error)
	Save(ctx context.Context, f followup.FollowUp) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]followup.FollowUp, error)
}

// FollowUpDeps holds dependencies for follow-up orchestrators.
type FollowUpDeps struct {
	FollowUpStore FollowUpStoreForOrchestrator
	GenerateID    func() string
	Now           func() time.Time
}

// CreateFollowUpInput carries input for the create follow-up orchestrator.
type CreateFollowUpInput struct {
	UserID      string
	Name        string
	Company     string
	Description string
	ScheduleAt  time.Time
}

// UpdateFollowUpInput carries input for the update follow-up orchestrator.
type UpdateFollowUpInput struct {
	FollowUpID  string
	Name        string
	Company     string
	Description string
	ScheduleAt  time.Time
}

// refetchFollowUps reloads the user's list after a mutation attempt. The
// caller's error wins; a refetch failure only surfaces when the mutation
// itself succeeded.
func refetchFollowUps(ctx context.Context, deps FollowUpDeps, userID string, opErr error) ([]followup.FollowUp, error) {
	items, err := deps.FollowUpStore.ListByUser(ctx, userID)
	if opErr != nil {
		return items, opErr
	}
	return items, err
}

// ExecuteCreateFollowUp creates a follow-up and returns the refreshed list.
// PRE: input.UserID is non-empty
// POST: the refreshed list is returned even when the write fails
func ExecuteCreateFollowUp(ctx context.Context, input CreateFollowUpInput, deps FollowUpDeps) ([]followup.FollowUp, error) {
	if input.UserID == "" {
		return nil, invalid(errors.New("user ID is required"))
	}

	f := followup.FollowUp{
		ID:          deps.GenerateID(),
		UserID:      input.UserID,
		Name:        input.Name,
		Company:     input.Company,
		Description: input.Description,
		ScheduleAt:  input.ScheduleAt,
		CreatedAt:   deps.Now(),
	}

	if err := f.Validate(); err != nil {
		return refetchFollowUps(ctx, deps, input.UserID, invalid(err))
	}
	if err := deps.FollowUpStore.Save(ctx, f); err != nil {
		slog.Error("follow_up_event", "event", "create_failed", "follow_up_id", f.ID, "error", err)
		return refetchFollowUps(ctx, deps, input.UserID, err)
	}

	slog.Info("follow_up_event", "event", "follow_up_created", "follow_up_id", f.ID, "user_id", input.UserID)
	return refetchFollowUps(ctx, deps, input.UserID, nil)
}

// ExecuteUpdateFollowUp updates a follow-up and returns the refreshed
// list. A no-op edit skips the write entirely.
// PRE: input.FollowUpID names an existing follow-up
// POST: at most one write is issued; unchanged records issue none
func ExecuteUpdateFollowUp(ctx context.Context, input UpdateFollowUpInput, deps FollowUpDeps) ([]followup.FollowUp, error) {
	if input.FollowUpID == "" {
		return nil, invalid(errors.New("follow-up ID is required"))
	}

	existing, err := deps.FollowUpStore.GetByID(ctx, input.FollowUpID)
	if err != nil {
		return nil, err
	}

	updated := existing
	updated.Name = input.Name
	updated.Company = input.Company
	updated.Description = input.Description
	updated.ScheduleAt = input.ScheduleAt

	if err := updated.Validate(); err != nil {
		return refetchFollowUps(ctx, deps, existing.UserID, invalid(err))
	}

	// Dirty check: identical submissions skip the write
	if updated.Name == existing.Name &&
		updated.Company == existing.Company &&
		updated.Description == existing.Description &&
		updated.ScheduleAt.Equal(existing.ScheduleAt) {
		return refetchFollowUps(ctx, deps, existing.UserID, nil)
	}

	if err := deps.FollowUpStore.Save(ctx, updated); err != nil {
		slog.Error("follow_up_event", "event", "update_failed", "follow_up_id", updated.ID, "error", err)
		return refetchFollowUps(ctx, deps, existing.UserID, err)
	}

	slog.Info("follow_up_event", "event", "follow_up_updated", "follow_up_id", updated.ID)
	return refetchFollowUps(ctx, deps, existing.UserID, nil)
}

// ExecuteDeleteFollowUp removes a follow-up and returns the refreshed list.
// PRE: followUpID names an existing follow-up
// POST: the refreshed list is returned even when the delete fails
func ExecuteDeleteFollowUp(ctx context.Context, followUpID string, deps FollowUpDeps) ([]followup.FollowUp, error) {
	if followUpID == "" {
		return nil, invalid(errors.New("follow-up ID is required"))
	}

	existing, err := deps.FollowUpStore.GetByID(ctx, followUpID)
	if err != nil {
		return nil, err
	}

	if err := deps.FollowUpStore.Delete(ctx, followUpID); err != nil {
		slog.Error("follow_up_event", "event", "delete_failed", "follow_up_id", followUpID, "error", err)
		return refetchFollowUps(ctx, deps, existing.UserID, err)
	}

	slog.Info("follow_up_event", "event", "follow_up_deleted", "follow_up_id", followUpID)
	return refetchFollowUps(ctx, deps, existing.UserID, nil)
}
