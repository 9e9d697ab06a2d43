package timeline

import (
	"errors"
	"time"

	"bizkit/internal/domain/project"
)

// ErrInvalidWindow is returned when a layout is requested for a year/month
// pair that does not denote a real calendar month. This is a programmer
// error at the call site, not a recoverable condition.
var ErrInvalidWindow = errors.New("timeline window must have a positive year and month 1-12")

// Window is the single calendar month displayed by the timeline view.
type Window struct {
	Year  int
	Month time.Month
}

// Contains reports whether t's calendar month matches the window.
// INVARIANT: Window fields are not mutated
func (w Window) Contains(t time.Time) bool {
	return t.Year() == w.Year && t.Month() == w.Month
}

// LaidOutEntry is a project annotated with its horizontal position on the
// day grid, both expressed as fractions of the month's width.
type LaidOutEntry struct {
	Project project.Project
	Visible bool    // start date falls inside the window
	Left    float64 // (clampedStart-1)/totalDays; 0 when not visible
	Width   float64 // (clampedEnd-clampedStart+1)/totalDays; 0 when not visible
}

// Month is the laid-out timeline for one window.
type Month struct {
	Window    Window
	TotalDays int
	Entries   []LaidOutEntry // one per input project, in input order
	// TodayMarker is the fractional position of the today indicator,
	// meaningful only when HasToday is true.
	TodayMarker float64
	HasToday    bool
}

// VisibleEntries returns the visible entries in input order.
// INVARIANT: Month fields are not mutated
func (m Month) VisibleEntries() []LaidOutEntry {
	var visible []LaidOutEntry
	for _, e := range m.Entries {
		if e.Visible {
			visible = append(visible, e)
		}
	}
	return visible
}

// LayoutMonth positions projects on the window's day grid.
//
// A project is visible only when its start date's year and month match the
// window; a project that merely overlaps the window but starts in another
// month is excluded, so an entry spanning a month boundary renders clamped
// in its start month and not at all in the next. Day numbers are clamped
// to [1, totalDays] before the fractions are computed, which guarantees
// Left >= 0, Width >= 1/totalDays and Left+Width <= 1 for every visible
// entry. Entries are not packed into shared rows: each keeps its own row
// in input order, overlaps included.
//
// The today indicator is emitted only when "today" falls inside the window,
// centered on its day: (day-0.5)/totalDays.
//
// PRE: none
// POST: returns ErrInvalidWindow for an impossible window; otherwise one
// entry per input project, order preserved
func LayoutMonth(w Window, projects []project.Project, today time.Time) (Month, error) {
	if w.Year <= 0 || w.Month < time.January || w.Month > time.December {
		return Month{}, ErrInvalidWindow
	}

	totalDays := daysIn(w.Year, w.Month)
	m := Month{
		Window:    w,
		TotalDays: totalDays,
		Entries:   make([]LaidOutEntry, 0, len(projects)),
	}

	if w.Contains(today) {
		m.HasToday = true
		m.TodayMarker = (float64(today.Day()) - 0.5) / float64(totalDays)
	}

	for _, p := range projects {
		entry := LaidOutEntry{Project: p}
		if w.Contains(p.StartDate) {
			startDay := clamp(p.StartDate.Day(), 1, totalDays)
			endDay := p.EndDate.Day()
			if !w.Contains(p.EndDate) {
				// End date in a later month: draw to the end of the window.
				endDay = totalDays
			}
			endDay = clamp(endDay, startDay, totalDays)

			entry.Visible = true
			entry.Left = float64(startDay-1) / float64(totalDays)
			entry.Width = float64(endDay-startDay+1) / float64(totalDays)
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}

// daysIn returns the number of days in the given Gregorian month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
