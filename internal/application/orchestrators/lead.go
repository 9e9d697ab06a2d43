package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bizkit/internal/domain/lead"
)

// LeadStoreForOrchestrator defines the store interface needed by lead
// orchestrators.
type LeadStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (lead.Lead, error)
	Save(ctx context.Context, l lead.Lead) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]lead.Lead, error)
}

// LeadDeps holds dependencies for lead orchestrators.
type LeadDeps struct {
	LeadStore  LeadStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// CreateLeadInput carries input for the create lead orchestrator.
type CreateLeadInput struct {
	UserID      string
	Name        string
	Email       string
	Company     string
	Industry    string
	Source      string
	Status      string
	FollowUp    time.Time
	LinkedInURL string
	AvatarURL   string
}

// UpdateLeadInput carries input for the update lead orchestrator.
type UpdateLeadInput struct {
	LeadID      string
	Name        string
	Email       string
	Company     string
	Industry    string
	Source      string
	Status      string
	FollowUp    time.Time
	LinkedInURL string
	AvatarURL   string
	Active      bool
}

func refetchLeads(ctx context.Context, deps LeadDeps, userID string, opErr error) ([]lead.Lead, error) {
	items, err := deps.LeadStore.ListByUser(ctx, userID)
	if opErr != nil {
		return items, opErr
	}
	return items, err
}

// ExecuteCreateLead creates a lead and returns the refreshed list. A
// missing status defaults to the first pipeline stage.
// PRE: input.UserID is non-empty
// POST: the refreshed list is returned even when the write fails
func ExecuteCreateLead(ctx context.Context, input CreateLeadInput, deps LeadDeps) ([]lead.Lead, error) {
	if input.UserID == "" {
		return nil, invalid(errors.New("user ID is required"))
	}

	status := input.Status
	if status == "" {
		status = lead.StatusNew
	}

	l := lead.Lead{
		ID:          deps.GenerateID(),
		UserID:      input.UserID,
		Name:        input.Name,
		Email:       input.Email,
		Company:     input.Company,
		Industry:    input.Industry,
		Source:      input.Source,
		Status:      status,
		FollowUp:    input.FollowUp,
		LinkedInURL: input.LinkedInURL,
		AvatarURL:   input.AvatarURL,
		Active:      true,
		CreatedAt:   deps.Now(),
	}

	if err := l.Validate(); err != nil {
		return refetchLeads(ctx, deps, input.UserID, invalid(err))
	}
	if err := deps.LeadStore.Save(ctx, l); err != nil {
		slog.Error("lead_event", "event", "create_failed", "lead_id", l.ID, "error", err)
		return refetchLeads(ctx, deps, input.UserID, err)
	}

	slog.Info("lead_event", "event", "lead_created", "lead_id", l.ID, "user_id", input.UserID, "status", status)
	return refetchLeads(ctx, deps, input.UserID, nil)
}

// ExecuteUpdateLead updates a lead's full record and returns the
// refreshed list. A no-op edit skips the write entirely.
// PRE: input.LeadID names an existing lead
// POST: at most one write is issued; unchanged records issue none
func ExecuteUpdateLead(ctx context.Context, input UpdateLeadInput, deps LeadDeps) ([]lead.Lead, error) {
	if input.LeadID == "" {
		return nil, invalid(errors.New("lead ID is required"))
	}

	existing, err := deps.LeadStore.GetByID(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}

	updated := existing
	updated.Name = input.Name
	updated.Email = input.Email
	updated.Company = input.Company
	updated.Industry = input.Industry
	updated.Source = input.Source
	updated.Status = input.Status
	updated.FollowUp = input.FollowUp
	updated.LinkedInURL = input.LinkedInURL
	updated.AvatarURL = input.AvatarURL
	updated.Active = input.Active

	if err := updated.Validate(); err != nil {
		return refetchLeads(ctx, deps, existing.UserID, invalid(err))
	}

	if leadsEqual(updated, existing) {
		return refetchLeads(ctx, deps, existing.UserID, nil)
	}

	if err := deps.LeadStore.Save(ctx, updated); err != nil {
		slog.Error("lead_event", "event", "update_failed", "lead_id", updated.ID, "error", err)
		return refetchLeads(ctx, deps, existing.UserID, err)
	}

	slog.Info("lead_event", "event", "lead_updated", "lead_id", updated.ID)
	return refetchLeads(ctx, deps, existing.UserID, nil)
}

// ExecuteMoveLeadStatus moves a lead to another pipeline stage and
// returns the refreshed list. This is the board drag-and-drop operation:
// the status replacement touches nothing else, a drop on the current
// column writes nothing, and the board is always rebuilt from a refetch.
// PRE: leadID names an existing lead; status is a known pipeline stage
// POST: exactly one write on a real move, zero on a same-column drop; the
// refreshed list is returned even when the write fails
func ExecuteMoveLeadStatus(ctx context.Context, leadID, status string, deps LeadDeps) ([]lead.Lead, error) {
	if leadID == "" {
		return nil, invalid(errors.New("lead ID is required"))
	}

	existing, err := deps.LeadStore.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	from := existing.Status
	if err := existing.SetStatus(status); err != nil {
		return refetchLeads(ctx, deps, existing.UserID, invalid(err))
	}

	if from == existing.Status {
		return refetchLeads(ctx, deps, existing.UserID, nil)
	}

	if err := deps.LeadStore.Save(ctx, existing); err != nil {
		slog.Error("lead_event", "event", "move_failed", "lead_id", leadID, "from", from, "to", status, "error", err)
		return refetchLeads(ctx, deps, existing.UserID, err)
	}

	slog.Info("lead_event", "event", "lead_moved", "lead_id", leadID, "from", from, "to", status)
	return refetchLeads(ctx, deps, existing.UserID, nil)
}

// ExecuteDeleteLead removes a lead and returns the refreshed list.
// PRE: leadID names an existing lead
// POST: the refreshed list is returned even when the delete fails
func ExecuteDeleteLead(ctx context.Context, leadID string, deps LeadDeps) ([]lead.Lead, error) {
	if leadID == "" {
		return nil, invalid(errors.New("lead ID is required"))
	}

	existing, err := deps.LeadStore.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if err := deps.LeadStore.Delete(ctx, leadID); err != nil {
		slog.Error("lead_event", "event", "delete_failed", "lead_id", leadID, "error", err)
		return refetchLeads(ctx, deps, existing.UserID, err)
	}

	slog.Info("lead_event", "event", "lead_deleted", "lead_id", leadID)
	return refetchLeads(ctx, deps, existing.UserID, nil)
}

func leadsEqual(a, b lead.Lead) bool {
	return a.Name == b.Name &&
		a.Email == b.Email &&
		a.Company == b.Company &&
		a.Industry == b.Industry &&
		a.Source == b.Source &&
		a.Status == b.Status &&
		a.FollowUp.Equal(b.FollowUp) &&
		a.LinkedInURL == b.LinkedInURL &&
		a.AvatarURL == b.AvatarURL &&
		a.Active == b.Active
}
