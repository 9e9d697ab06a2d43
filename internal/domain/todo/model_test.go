package todo

import (
	"strings"
	"testing"
	"time"
)

// TestTodo_Validate tests todo validation rules.
func TestTodo_Validate(t *testing.T) {
	valid := Todo{
		ID:       "t1",
		UserID:   "u1",
		Tag:      TagFinance,
		Title:    "Send Q3 invoices",
		Assignee: "Mika T.",
		DueDate:  time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid todo, got: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(td *Todo)
		wantErr string
	}{
		{"empty title", func(td *Todo) { td.Title = "" }, "title cannot be empty"},
		{"title too long", func(td *Todo) { td.Title = strings.Repeat("x", MaxTitleLength+1) }, "title cannot exceed"},
		{"empty assignee", func(td *Todo) { td.Assignee = " " }, "assignee cannot be empty"},
		{"missing due date", func(td *Todo) { td.DueDate = time.Time{} }, "due date is required"},
		{"unknown tag", func(td *Todo) { td.Tag = "Legal" }, "tag must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			td := valid
			tc.modify(&td)
			err := td.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}
