package todo

import (
	"errors"
	"strings"
	"time"
)

// Tag constants for the department a todo belongs to.
const (
	TagBDM       = "BDM"
	TagFinance   = "Finance"
	TagWebsite   = "Website"
	TagMarketing = "Marketing"
	TagDesign    = "Design"
)

// ValidTags contains all valid tag values, in picker order.
var ValidTags = []string{TagBDM, TagFinance, TagWebsite, TagMarketing, TagDesign}

// MaxTitleLength bounds the todo title.
const MaxTitleLength = 300

// Domain errors
var (
	ErrEmptyTitle     = errors.New("todo title cannot be empty")
	ErrEmptyAssignee  = errors.New("todo assignee cannot be empty")
	ErrMissingDueDate = errors.New("todo due date is required")
	ErrInvalidTag     = errors.New("todo tag must be one of: BDM, Finance, Website, Marketing, Design")
)

// Todo is a dated task on the overview board.
type Todo struct {
	ID          string
	UserID      string // owning account
	Tag         string
	TagColor    string // presentation hint stored with the record
	Title       string
	Assignee    string
	AssigneeOrg string
	CreatorName string
	CreatorOrg  string
	DueDate     time.Time
	Done        bool
	CreatedAt   time.Time
}

// Validate checks if the Todo has valid data.
// PRE: Todo struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > MaxTitleLength {
		return errors.New("todo title cannot exceed 300 characters")
	}
	if strings.TrimSpace(t.Assignee) == "" {
		return ErrEmptyAssignee
	}
	if t.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if !isValidTag(t.Tag) {
		return ErrInvalidTag
	}
	return nil
}

func isValidTag(tag string) bool {
	for _, v := range ValidTags {
		if v == tag {
			return true
		}
	}
	return false
}
