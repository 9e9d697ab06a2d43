package lead

import (
	"errors"
	"strings"
	"time"
)

// Pipeline status constants. The declaration order is the board display
// order; it carries no transition semantics.
const (
	StatusNew                  = "New"
	StatusReachedOut           = "Reached Out"
	StatusRepliedNotInterested = "Replied - Not Interested"
	StatusRepliedInterested    = "Replied - Interested"
	StatusMeetingSetUp         = "Meeting Set Up"
	StatusProposalSent         = "Proposal Sent"
	StatusOnPause              = "On Pause"
	StatusClosed               = "Closed"
	StatusPrepareProposal      = "Prepare proposal"
)

// Statuses contains every pipeline stage, in board column order.
var Statuses = []string{
	StatusNew,
	StatusReachedOut,
	StatusRepliedNotInterested,
	StatusRepliedInterested,
	StatusMeetingSetUp,
	StatusProposalSent,
	StatusOnPause,
	StatusClosed,
	StatusPrepareProposal,
}

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 200
	MaxEmailLength   = 254
	MaxCompanyLength = 200
	MaxURLLength     = 2048
)

// Domain errors
var (
	ErrEmptyName     = errors.New("lead name cannot be empty")
	ErrEmptyEmail    = errors.New("lead email cannot be empty")
	ErrInvalidEmail  = errors.New("lead email must contain '@'")
	ErrInvalidStatus = errors.New("lead status is not a known pipeline stage")
)

// Lead is a sales pipeline record.
// Any stage is reachable from any other; moving a lead has no side
// effects (a follow-up date survives a move to Closed).
type Lead struct {
	ID          string
	UserID      string // owning account
	Name        string
	Email       string
	Company     string
	Industry    string
	Source      string
	Status      string
	FollowUp    time.Time // zero value means no follow-up date
	LinkedInURL string
	AvatarURL   string
	Active      bool
	CreatedAt   time.Time
}

// Validate checks if the Lead has valid data.
// PRE: Lead struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if len(l.Name) > MaxNameLength {
		return errors.New("lead name cannot exceed 200 characters")
	}
	if strings.TrimSpace(l.Email) == "" {
		return ErrEmptyEmail
	}
	if len(l.Email) > MaxEmailLength {
		return errors.New("lead email cannot exceed 254 characters")
	}
	if !strings.Contains(l.Email, "@") {
		return ErrInvalidEmail
	}
	if len(l.Company) > MaxCompanyLength {
		return errors.New("lead company cannot exceed 200 characters")
	}
	if !IsValidStatus(l.Status) {
		return ErrInvalidStatus
	}
	if len(l.LinkedInURL) > MaxURLLength || len(l.AvatarURL) > MaxURLLength {
		return errors.New("lead URL cannot exceed 2048 characters")
	}
	return nil
}

// SetStatus replaces the pipeline status. The replacement is
// unconditional: no stage is unreachable from any other, and no other
// field is touched. Setting the current status again is a no-op.
// PRE: status is a member of the closed enumeration
// POST: Status == status; all other fields unchanged
func (l *Lead) SetStatus(status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	l.Status = status
	return nil
}

// IsValidStatus reports whether s is a member of the pipeline enumeration.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Column is one Kanban board column: a pipeline stage and the leads
// currently in it.
type Column struct {
	Status string
	Leads  []Lead
}

// ColumnsByStatus partitions leads into one column per pipeline stage, in
// declared stage order. Every lead lands in exactly one column; leads
// carrying a status outside the enumeration get trailing columns in
// first-seen order so none are dropped.
// PRE: none
// POST: union of all columns equals the input, order within a column is
// input order
func ColumnsByStatus(leads []Lead) []Column {
	byStatus := make(map[string][]Lead)
	var strays []string
	for _, l := range leads {
		if _, seen := byStatus[l.Status]; !seen && !IsValidStatus(l.Status) {
			strays = append(strays, l.Status)
		}
		byStatus[l.Status] = append(byStatus[l.Status], l)
	}

	columns := make([]Column, 0, len(Statuses)+len(strays))
	for _, s := range Statuses {
		columns = append(columns, Column{Status: s, Leads: byStatus[s]})
	}
	for _, s := range strays {
		columns = append(columns, Column{Status: s, Leads: byStatus[s]})
	}
	return columns
}

// Stats summarizes the pipeline for the stat cards above the board.
type Stats struct {
	Total          int
	ReachedOut     int     // any stage except New and On Pause
	YetToReachOut  int     // still New
	AwaitingReview int     // Prepare proposal or Proposal Sent
	Replied        int     // either Replied stage
	ReplyRate      float64 // Replied / ReachedOut * 100; 0 when nothing sent
}

// ComputeStats derives pipeline stats from a set of leads.
// PRE: none
// POST: pure; same input yields same stats
func ComputeStats(leads []Lead) Stats {
	s := Stats{Total: len(leads)}
	for _, l := range leads {
		if l.Status != StatusNew && l.Status != StatusOnPause {
			s.ReachedOut++
		}
		if l.Status == StatusNew {
			s.YetToReachOut++
		}
		if l.Status == StatusPrepareProposal || l.Status == StatusProposalSent {
			s.AwaitingReview++
		}
		if strings.HasPrefix(l.Status, "Replied") {
			s.Replied++
		}
	}
	if s.ReachedOut > 0 {
		s.ReplyRate = float64(s.Replied) / float64(s.ReachedOut) * 100
	}
	return s
}
