package web

import (
	"net/http"
	"time"

	"bizkit/internal/application/projections"
)

// handleOverview handles GET /api/overview, the aggregated dashboard
// landing payload.
func handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := projections.QueryGetOverview(r.Context(), projections.GetOverviewQuery{
		UserID: sess.AccountID,
	}, projections.GetOverviewDeps{
		FollowUpStore: stores.FollowUpStore,
		TodoStore:     stores.TodoStore,
		ProjectStore:  stores.ProjectStore,
		LeadStore:     stores.LeadStore,
		NewsStore:     stores.NewsStore,
		Calendar:      overviewCalendar(),
	}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// overviewCalendar adapts the optional global provider to the projection
// interface. A typed-nil provider must stay nil at the interface level.
func overviewCalendar() projections.OverviewCalendarProvider {
	if calendarProvider == nil {
		return nil
	}
	return calendarProvider
}

// handleCalendarEvents handles GET /api/calendar/events
func handleCalendarEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	now := timeNow()
	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "from must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "to must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if from.IsZero() {
		from = now
	}
	if to.IsZero() {
		to = time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	}

	if calendarProvider == nil {
		writeJSON(w, http.StatusOK, map[string]any{"events": []any{}, "synced": false})
		return
	}

	events, synced, err := calendarProvider.Events(r.Context(), from, to)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events, "synced": synced})
}
