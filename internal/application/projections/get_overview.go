package projections

import (
	"context"
	"time"

	"bizkit/internal/adapters/calendar"
	"bizkit/internal/domain/agenda"
	"bizkit/internal/domain/followup"
	"bizkit/internal/domain/lead"
	"bizkit/internal/domain/news"
	"bizkit/internal/domain/timeline"
	"bizkit/internal/domain/todo"
)

// OverviewCalendarProvider defines the calendar interface needed by the
// overview projection.
type OverviewCalendarProvider interface {
	Events(ctx context.Context, from, to time.Time) ([]calendar.Event, bool, error)
}

// GetOverviewQuery carries query parameters.
type GetOverviewQuery struct {
	UserID string
}

// GetOverviewDeps holds dependencies for the overview projection.
type GetOverviewDeps struct {
	FollowUpStore FollowUpStore
	TodoStore     TodoStore
	ProjectStore  ProjectStore
	LeadStore     LeadStore
	NewsStore     NewsStore
	Calendar      OverviewCalendarProvider // optional: nil skips calendar events
}

// OverviewResult carries the output of the overview projection. A failed
// section leaves its zero value; the page renders what it can.
type OverviewResult struct {
	FollowUpGroups []agenda.Group[followup.FollowUp]
	Todos          []todo.Todo
	News           []news.Item
	Timeline       *timeline.Month // current month
	LeadStats      lead.Stats
	CalendarEvents []calendar.Event
	CalendarSynced bool
}

// QueryGetOverview aggregates the overview page: agenda buckets, todos,
// saved news, the current-month timeline, pipeline stats and calendar
// events.
// PRE: query.UserID is non-empty
// POST: individual section failures never fail the whole projection
func QueryGetOverview(ctx context.Context, query GetOverviewQuery, deps GetOverviewDeps, now time.Time) (OverviewResult, error) {
	var result OverviewResult

	// Agenda buckets from scheduled follow-ups
	if items, err := deps.FollowUpStore.ListByUser(ctx, query.UserID); err == nil {
		result.FollowUpGroups = agenda.GroupBySchedule(now, items, func(f followup.FollowUp) (time.Time, bool) {
			return f.ScheduleAt, f.Scheduled()
		})
	}

	// Open tasks
	if todos, err := deps.TodoStore.ListByUser(ctx, query.UserID); err == nil {
		result.Todos = todos
	}

	// Saved news links
	if items, err := deps.NewsStore.ListByUser(ctx, query.UserID); err == nil {
		result.News = items
	}

	// Current-month project timeline
	if projects, err := deps.ProjectStore.List(ctx); err == nil {
		window := timeline.Window{Year: now.Year(), Month: now.Month()}
		if month, err := timeline.LayoutMonth(window, projects, now); err == nil {
			result.Timeline = &month
		}
	}

	// Pipeline stat cards
	if leads, err := deps.LeadStore.ListByUser(ctx, query.UserID); err == nil {
		result.LeadStats = lead.ComputeStats(leads)
	}

	// Upcoming calendar events for the rest of the month
	if deps.Calendar != nil {
		monthEnd := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		if events, synced, err := deps.Calendar.Events(ctx, now, monthEnd); err == nil {
			result.CalendarEvents = events
			result.CalendarSynced = synced
		}
	}

	return result, nil
}
