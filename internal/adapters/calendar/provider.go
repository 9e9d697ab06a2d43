// Package calendar fetches external calendar events for the overview
// page. The connected calendar account is optional; a disconnected
// provider still answers, flagged as not synced.
package calendar

import (
	"context"
	"time"
)

// Event is a calendar entry in the requested window.
type Event struct {
	ID       string
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Location string
}

// Provider supplies events for a time window. synced reports whether a
// real calendar account is connected; callers render a connect prompt
// when it is false.
type Provider interface {
	Events(ctx context.Context, from, to time.Time) (events []Event, synced bool, err error)
}
