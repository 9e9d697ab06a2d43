package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bizkit/internal/domain/client"
)

// ClientStoreForOrchestrator defines the store interface needed by client
// orchestrators.
type ClientStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (client.Client, error)
	Save(ctx context.Context, c client.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]client.Client, error)
}

// ClientDeps holds dependencies for client orchestrators.
type ClientDeps struct {
	ClientStore ClientStoreForOrchestrator
	GenerateID  func() string
	Now         func() time.Time
}

// SaveClientInput carries input for create and update. An empty ClientID
// creates a new record.
type SaveClientInput struct {
	ClientID       string
	Name           string
	Email          string
	Company        string
	CompanyWebsite string
	Industry       string
	Source         string
	City           string
	Country        string
	LinkedIn       string
	Phone          string
	Active         bool
	BillingName    string
	BillingEmail   string
	BillingABN     string
}

func refetchClients(ctx context.Context, deps ClientDeps, opErr error) ([]client.Client, error) {
	items, err := deps.ClientStore.List(ctx)
	if opErr != nil {
		return items, opErr
	}
	return items, err
}

// ExecuteSaveClient creates or updates a client and returns the refreshed
// list.
// PRE: none
// POST: the refreshed list is returned even when the write fails
func ExecuteSaveClient(ctx context.Context, input SaveClientInput, deps ClientDeps) ([]client.Client, error) {
	c := client.Client{
		ID:             input.ClientID,
		Name:           input.Name,
		Email:          input.Email,
		Company:        input.Company,
		CompanyWebsite: input.CompanyWebsite,
		Industry:       input.Industry,
		Source:         input.Source,
		City:           input.City,
		Country:        input.Country,
		LinkedIn:       input.LinkedIn,
		Phone:          input.Phone,
		Active:         input.Active,
		BillingName:    input.BillingName,
		BillingEmail:   input.BillingEmail,
		BillingABN:     input.BillingABN,
	}

	if c.ID == "" {
		c.ID = deps.GenerateID()
		c.CreatedAt = deps.Now()
	} else {
		existing, err := deps.ClientStore.GetByID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.CreatedAt = existing.CreatedAt
	}

	if err := c.Validate(); err != nil {
		return refetchClients(ctx, deps, invalid(err))
	}
	if err := deps.ClientStore.Save(ctx, c); err != nil {
		slog.Error("client_event", "event", "save_failed", "client_id", c.ID, "error", err)
		return refetchClients(ctx, deps, err)
	}

	slog.Info("client_event", "event", "client_saved", "client_id", c.ID)
	return refetchClients(ctx, deps, nil)
}

// ExecuteDeleteClient removes a client and returns the refreshed list.
// PRE: clientID names an existing client
// POST: the refreshed list is returned even when the delete fails
func ExecuteDeleteClient(ctx context.Context, clientID string, deps ClientDeps) ([]client.Client, error) {
	if clientID == "" {
		return nil, invalid(errors.New("client ID is required"))
	}

	if _, err := deps.ClientStore.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	if err := deps.ClientStore.Delete(ctx, clientID); err != nil {
		slog.Error("client_event", "event", "delete_failed", "client_id", clientID, "error", err)
		return refetchClients(ctx, deps, err)
	}

	slog.Info("client_event", "event", "client_deleted", "client_id", clientID)
	return refetchClients(ctx, deps, nil)
}
