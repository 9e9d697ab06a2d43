package project

import (
	"errors"
	"strings"
	"time"
)

// Category tag constants.
const (
	TagDesign  = "UX/UI"
	TagWebsite = "Website"
)

// ValidTags contains all valid tag values.
var ValidTags = []string{TagDesign, TagWebsite}

// Max length constants.
const (
	MaxNameLength   = 200
	MaxClientLength = 200
	MaxAvatarLength = 4 // short initials shown on the timeline bar
)

// Domain errors
var (
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrEmptyClient      = errors.New("project client cannot be empty")
	ErrInvalidTag       = errors.New("project tag must be 'UX/UI' or 'Website'")
	ErrInvalidProgress  = errors.New("project progress must be between 0 and 100")
	ErrMissingStartDate = errors.New("project start date is required")
	ErrEndBeforeStart   = errors.New("project end date cannot be before start date")
)

// Project is a date-ranged work item rendered on the timeline grid.
// INVARIANT: StartDate <= EndDate; Progress in [0,100].
type Project struct {
	ID        string
	Name      string
	Client    string
	Tag       string
	Progress  int // 0..100; 100 renders as done
	StartDate time.Time
	EndDate   time.Time
	Avatar    string // client initials, e.g. "DP"
	CreatedAt time.Time
}

// Validate checks the project's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("project name cannot exceed 200 characters")
	}
	if strings.TrimSpace(p.Client) == "" {
		return ErrEmptyClient
	}
	if len(p.Client) > MaxClientLength {
		return errors.New("project client cannot exceed 200 characters")
	}
	if !isValidTag(p.Tag) {
		return ErrInvalidTag
	}
	if p.Progress < 0 || p.Progress > 100 {
		return ErrInvalidProgress
	}
	if p.StartDate.IsZero() {
		return ErrMissingStartDate
	}
	if p.EndDate.IsZero() {
		return errors.New("project end date is required")
	}
	if p.EndDate.Before(p.StartDate) {
		return ErrEndBeforeStart
	}
	if len(p.Avatar) > MaxAvatarLength {
		return errors.New("project avatar cannot exceed 4 characters")
	}
	return nil
}

// Done reports whether the project is complete.
// INVARIANT: Project fields are not mutated
func (p *Project) Done() bool {
	return p.Progress == 100
}

func isValidTag(tag string) bool {
	for _, v := range ValidTags {
		if v == tag {
			return true
		}
	}
	return false
}
