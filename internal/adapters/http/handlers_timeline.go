package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bizkit/internal/application/orchestrators"
	"bizkit/internal/application/projections"
	"bizkit/internal/domain/project"
	"bizkit/internal/domain/timeline"
)

type projectView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Client    string    `json:"client"`
	Tag       string    `json:"tag"`
	Progress  int       `json:"progress"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func toProjectView(p project.Project) projectView {
	return projectView{
		ID:        p.ID,
		Name:      p.Name,
		Client:    p.Client,
		Tag:       p.Tag,
		Progress:  p.Progress,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Avatar:    p.Avatar,
		CreatedAt: p.CreatedAt,
	}
}

func projectListResponse(items []project.Project) map[string]any {
	views := make([]projectView, 0, len(items))
	for _, p := range items {
		views = append(views, toProjectView(p))
	}
	return map[string]any{"items": views}
}

type timelineEntryView struct {
	Project projectView `json:"project"`
	Visible bool        `json:"visible"`
	Left    float64     `json:"left"`
	Width   float64     `json:"width"`
}

func timelineResponse(m timeline.Month) map[string]any {
	entries := make([]timelineEntryView, 0, len(m.Entries))
	for _, e := range m.Entries {
		entries = append(entries, timelineEntryView{
			Project: toProjectView(e.Project),
			Visible: e.Visible,
			Left:    e.Left,
			Width:   e.Width,
		})
	}
	return map[string]any{
		"year":         m.Window.Year,
		"month":        int(m.Window.Month),
		"total_days":   m.TotalDays,
		"entries":      entries,
		"today_marker": m.TodayMarker,
		"has_today":    m.HasToday,
	}
}

// handleTimeline handles GET /api/timeline?year=YYYY&month=M. Missing
// params default to the current month.
func handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	now := timeNow()
	year, month := now.Year(), now.Month()
	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}
		year = n
	}
	if raw := q.Get("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "month must be an integer", http.StatusBadRequest)
			return
		}
		month = time.Month(n)
	}

	result, err := projections.QueryGetTimeline(r.Context(), projections.GetTimelineQuery{
		Year:  year,
		Month: month,
	}, projections.GetTimelineDeps{ProjectStore: stores.ProjectStore}, now)
	if err != nil {
		if errors.Is(err, timeline.ErrInvalidWindow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, timelineResponse(result.Month))
}

// handleProjects handles GET/POST/PUT/DELETE for /api/projects, the
// records behind the timeline. POST and PUT share a body; an empty id
// creates a record.
func handleProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	deps := orchestrators.ProjectDeps{
		ProjectStore: stores.ProjectStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	switch r.Method {
	case "GET":
		items, err := stores.ProjectStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, projectListResponse(items))

	case "POST", "PUT":
		release, ok := acquireView(w, "projects")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID        string `json:"id,omitempty"`
			Name      string `json:"name"`
			Client    string `json:"client"`
			Tag       string `json:"tag"`
			Progress  int    `json:"progress"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
			Avatar    string `json:"avatar"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		startDate, err := parseDateParam(input.StartDate)
		if err != nil {
			http.Error(w, "start_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		endDate, err := parseDateParam(input.EndDate)
		if err != nil {
			http.Error(w, "end_date must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteSaveProject(ctx, orchestrators.SaveProjectInput{
			ProjectID: input.ID,
			Name:      input.Name,
			Client:    input.Client,
			Tag:       input.Tag,
			Progress:  input.Progress,
			StartDate: startDate,
			EndDate:   endDate,
			Avatar:    input.Avatar,
		}, deps)
		if err != nil {
			writeMutationError(w, err, projectListResponse(items))
			return
		}
		status := http.StatusOK
		if r.Method == "POST" {
			status = http.StatusCreated
		}
		writeJSON(w, status, projectListResponse(items))

	case "DELETE":
		release, ok := acquireView(w, "projects")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID string `json:"id"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteDeleteProject(ctx, input.ID, deps)
		if err != nil {
			writeMutationError(w, err, projectListResponse(items))
			return
		}
		writeJSON(w, http.StatusOK, projectListResponse(items))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
