package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"bizkit/internal/domain/account"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin creates a default admin account if no accounts exist.
// PRE: Database is initialized
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Accounts already exist, skip seeding
	}

	admin := account.Account{
		ID:        deps.GenerateID(),
		Email:     email,
		Name:      "Admin",
		Role:      account.RoleAdmin,
		CreatedAt: deps.Now(),
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := admin.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, admin); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email)
	return nil
}
