package client

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxNameLength  = 200
	MaxEmailLength = 254
	MaxFieldLength = 200
)

// Domain errors
var (
	ErrEmptyName    = errors.New("client name cannot be empty")
	ErrEmptyEmail   = errors.New("client email cannot be empty")
	ErrInvalidEmail = errors.New("client email must contain '@'")
)

// Client is a signed customer record on the clients table.
type Client struct {
	ID             string
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
	CreatedAt      time.Time
}

// Validate checks if the Client has valid data.
// PRE: Client struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("client name cannot exceed 200 characters")
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if len(c.Email) > MaxEmailLength {
		return errors.New("client email cannot exceed 254 characters")
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if len(c.Company) > MaxFieldLength {
		return errors.New("client company cannot exceed 200 characters")
	}
	return nil
}
