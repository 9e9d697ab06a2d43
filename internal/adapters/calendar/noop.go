package calendar

import (
	"context"
	"time"
)

// NoopProvider is used when no calendar account is connected. It returns
// no events and reports synced=false.
type NoopProvider struct{}

// NewNoopProvider creates a disconnected calendar provider.
func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

// Events returns no events.
// POST: events is nil, synced is false, err is nil
func (p *NoopProvider) Events(_ context.Context, _, _ time.Time) ([]Event, bool, error) {
	return nil, false, nil
}
