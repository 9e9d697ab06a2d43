package news

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxURLLength   = 2048
	MaxTitleLength = 500
)

// Domain errors
var (
	ErrEmptyURL   = errors.New("news URL cannot be empty")
	ErrInvalidURL = errors.New("news URL must be an absolute http(s) URL")
)

// Item is a saved news link with metadata extracted from the page.
type Item struct {
	ID        string
	UserID    string // owning account
	URL       string
	Title     string // og:title, or "No title"
	Image     string // og:image, may be empty
	Source    string // og:site_name, or the URL's hostname
	CreatedAt time.Time
}

// Validate checks if the news item has valid data.
// PRE: Item struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Item) Validate() error {
	if strings.TrimSpace(n.URL) == "" {
		return ErrEmptyURL
	}
	if len(n.URL) > MaxURLLength {
		return errors.New("news URL cannot exceed 2048 characters")
	}
	u, err := url.Parse(n.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	if len(n.Title) > MaxTitleLength {
		return errors.New("news title cannot exceed 500 characters")
	}
	return nil
}

// Hostname returns the URL's hostname, the fallback source label.
// INVARIANT: Item fields are not mutated
func (n *Item) Hostname() string {
	u, err := url.Parse(n.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
