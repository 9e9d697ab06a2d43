package followup

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 200
	MaxCompanyLength     = 200
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrEmptyName       = errors.New("follow-up name cannot be empty")
	ErrEmptyCompany    = errors.New("follow-up company cannot be empty")
	ErrMissingSchedule = errors.New("follow-up schedule date is required")
)

// FollowUp is a scheduled reminder to contact a client or lead.
// The schedule date drives the agenda bucketing on the overview; an
// unscheduled follow-up (zero ScheduleAt) is stored but never bucketed.
type FollowUp struct {
	ID          string
	UserID      string // owning account
	Name        string
	Company     string
	Description string
	ScheduleAt  time.Time // zero value means unscheduled
	CreatedAt   time.Time
}

// Validate checks if the FollowUp has valid data.
// PRE: FollowUp struct is populated
// POST: Returns nil if valid, error otherwise
func (f *FollowUp) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if len(f.Name) > MaxNameLength {
		return errors.New("follow-up name cannot exceed 200 characters")
	}
	if strings.TrimSpace(f.Company) == "" {
		return ErrEmptyCompany
	}
	if len(f.Company) > MaxCompanyLength {
		return errors.New("follow-up company cannot exceed 200 characters")
	}
	if len(f.Description) > MaxDescriptionLength {
		return errors.New("follow-up description cannot exceed 2000 characters")
	}
	if f.ScheduleAt.IsZero() {
		return ErrMissingSchedule
	}
	return nil
}

// Scheduled reports whether the follow-up has a schedule date.
// INVARIANT: FollowUp fields are not mutated
func (f *FollowUp) Scheduled() bool {
	return !f.ScheduleAt.IsZero()
}
