package timeline

import (
	"testing"
	"time"

	"bizkit/internal/domain/project"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func proj(id string, start, end time.Time) project.Project {
	return project.Project{
		ID: id, Name: "n-" + id, Client: "c-" + id, Tag: project.TagWebsite,
		StartDate: start, EndDate: end,
	}
}

// notToday is far from any window used in these tests, so no today marker
// is emitted unless a test asks for one.
var notToday = day(1999, time.June, 15)

// TestLayoutMonth_TotalDays verifies Gregorian month lengths, leap years included.
func TestLayoutMonth_TotalDays(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29}, // leap year
		{2100, time.February, 28}, // century non-leap
		{2000, time.February, 29}, // 400-year leap
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tc := range tests {
		m, err := LayoutMonth(Window{Year: tc.year, Month: tc.month}, nil, notToday)
		if err != nil {
			t.Fatalf("%d-%d: unexpected error: %v", tc.year, tc.month, err)
		}
		if m.TotalDays != tc.want {
			t.Errorf("%d-%d: TotalDays = %d, want %d", tc.year, tc.month, m.TotalDays, tc.want)
		}
	}
}

// TestLayoutMonth_InvalidWindow verifies impossible windows are rejected.
func TestLayoutMonth_InvalidWindow(t *testing.T) {
	bad := []Window{
		{Year: 2026, Month: 13},
		{Year: 2026, Month: 0},
		{Year: 0, Month: time.March},
		{Year: -5, Month: time.March},
	}
	for _, w := range bad {
		if _, err := LayoutMonth(w, nil, notToday); err != ErrInvalidWindow {
			t.Errorf("window %+v: expected ErrInvalidWindow, got %v", w, err)
		}
	}
}

// TestLayoutMonth_Fractions verifies left/width for an in-month range.
func TestLayoutMonth_Fractions(t *testing.T) {
	w := Window{Year: 2026, Month: time.February} // 28 days
	p := proj("1", day(2026, time.February, 3), day(2026, time.February, 8))

	m, err := LayoutMonth(w, []project.Project{p}, notToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := m.Entries[0]
	if !e.Visible {
		t.Fatal("entry should be visible")
	}
	wantLeft := 2.0 / 28.0  // (3-1)/28
	wantWidth := 6.0 / 28.0 // (8-3+1)/28
	if e.Left != wantLeft {
		t.Errorf("Left = %v, want %v", e.Left, wantLeft)
	}
	if e.Width != wantWidth {
		t.Errorf("Width = %v, want %v", e.Width, wantWidth)
	}
}

// TestLayoutMonth_FractionBounds verifies the fraction invariants hold for
// every visible entry across a spread of ranges.
func TestLayoutMonth_FractionBounds(t *testing.T) {
	w := Window{Year: 2026, Month: time.February}
	projects := []project.Project{
		proj("first-day", day(2026, time.February, 1), day(2026, time.February, 1)),
		proj("last-day", day(2026, time.February, 28), day(2026, time.February, 28)),
		proj("full-month", day(2026, time.February, 1), day(2026, time.February, 28)),
		proj("overhang", day(2026, time.February, 20), day(2026, time.March, 5)),
	}
	m, err := LayoutMonth(w, projects, notToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	minWidth := 1.0 / float64(m.TotalDays)
	for _, e := range m.Entries {
		if !e.Visible {
			t.Fatalf("%s: expected visible", e.Project.ID)
		}
		if e.Left < 0 {
			t.Errorf("%s: Left = %v, want >= 0", e.Project.ID, e.Left)
		}
		if e.Width < minWidth {
			t.Errorf("%s: Width = %v, want >= %v", e.Project.ID, e.Width, minWidth)
		}
		if e.Left+e.Width > 1.0000001 {
			t.Errorf("%s: Left+Width = %v, want <= 1", e.Project.ID, e.Left+e.Width)
		}
	}
}

// TestLayoutMonth_MonthBoundary verifies the start-month-only visibility
// rule: an entry spanning Feb into Mar is visible (clamped) in Feb and
// absent from Mar.
func TestLayoutMonth_MonthBoundary(t *testing.T) {
	p := proj("span", day(2026, time.February, 27), day(2026, time.March, 2))

	feb, err := LayoutMonth(Window{Year: 2026, Month: time.February}, []project.Project{p}, notToday)
	if err != nil {
		t.Fatalf("feb: unexpected error: %v", err)
	}
	e := feb.Entries[0]
	if !e.Visible {
		t.Fatal("entry should be visible in its start month")
	}
	// Clamped to the last day of February: days 27..28.
	if want := 2.0 / 28.0; e.Width != want {
		t.Errorf("clamped Width = %v, want %v", e.Width, want)
	}

	mar, err := LayoutMonth(Window{Year: 2026, Month: time.March}, []project.Project{p}, notToday)
	if err != nil {
		t.Fatalf("mar: unexpected error: %v", err)
	}
	if mar.Entries[0].Visible {
		t.Error("entry starting in February must not be visible in March")
	}
	if len(mar.VisibleEntries()) != 0 {
		t.Error("VisibleEntries should be empty for March")
	}
}

// TestLayoutMonth_SameMonthDifferentYear verifies the year is part of the
// visibility check, not just the month.
func TestLayoutMonth_SameMonthDifferentYear(t *testing.T) {
	p := proj("old", day(2025, time.February, 10), day(2025, time.February, 12))
	m, err := LayoutMonth(Window{Year: 2026, Month: time.February}, []project.Project{p}, notToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Entries[0].Visible {
		t.Error("entry from February of another year must not be visible")
	}
}

// TestLayoutMonth_TodayMarker verifies the indicator appears only for the
// current month and is centered on the day.
func TestLayoutMonth_TodayMarker(t *testing.T) {
	today := day(2026, time.February, 10)

	m, err := LayoutMonth(Window{Year: 2026, Month: time.February}, nil, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.HasToday {
		t.Fatal("expected today marker in the current month")
	}
	if want := 9.5 / 28.0; m.TodayMarker != want {
		t.Errorf("TodayMarker = %v, want %v", m.TodayMarker, want)
	}

	other, err := LayoutMonth(Window{Year: 2026, Month: time.March}, nil, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.HasToday {
		t.Error("no today marker expected outside the current month")
	}
}

// TestLayoutMonth_PreservesInputOrder verifies entries are stacked in input
// order with no packing or reordering of overlapping ranges.
func TestLayoutMonth_PreservesInputOrder(t *testing.T) {
	projects := []project.Project{
		proj("b", day(2026, time.February, 7), day(2026, time.February, 12)),
		proj("a", day(2026, time.February, 3), day(2026, time.February, 8)),
		proj("c", day(2026, time.February, 5), day(2026, time.February, 6)),
	}
	m, err := LayoutMonth(Window{Year: 2026, Month: time.February}, projects, notToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m.Entries))
	}
	for i, id := range []string{"b", "a", "c"} {
		if m.Entries[i].Project.ID != id {
			t.Errorf("entry %d = %s, want %s", i, m.Entries[i].Project.ID, id)
		}
	}
}
