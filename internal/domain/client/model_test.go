package client

import (
	"strings"
	"testing"
)

// TestClient_Validate tests client validation rules.
func TestClient_Validate(t *testing.T) {
	valid := Client{
		ID:    "c1",
		Name:  "Priya Shah",
		Email: "priya@extendify.io",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid client, got: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(c *Client)
		wantErr string
	}{
		{"empty name", func(c *Client) { c.Name = "" }, "name cannot be empty"},
		{"empty email", func(c *Client) { c.Email = "" }, "email cannot be empty"},
		{"bad email", func(c *Client) { c.Email = "nope" }, "must contain '@'"},
		{"company too long", func(c *Client) { c.Company = strings.Repeat("x", MaxFieldLength+1) }, "company cannot exceed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.modify(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}
