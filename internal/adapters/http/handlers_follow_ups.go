package web

import (
	"net/http"
	"time"

	"bizkit/internal/application/orchestrators"
	"bizkit/internal/application/projections"
	"bizkit/internal/domain/agenda"
	"bizkit/internal/domain/followup"
)

// followUpView is the JSON shape of a follow-up. Description is stored
// as markdown; DescriptionHTML is rendered server-side.
type followUpView struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html"`
	ScheduleAt      *time.Time `json:"schedule_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type followUpGroupView struct {
	Label string         `json:"label"`
	Items []followUpView `json:"items"`
}

func toFollowUpView(f followup.FollowUp) followUpView {
	v := followUpView{
		ID:          f.ID,
		Name:        f.Name,
		Company:     f.Company,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
	if f.Description != "" {
		v.DescriptionHTML = renderMarkdown(f.Description)
	}
	if f.Scheduled() {
		at := f.ScheduleAt
		v.ScheduleAt = &at
	}
	return v
}

func toFollowUpViews(items []followup.FollowUp) []followUpView {
	views := make([]followUpView, 0, len(items))
	for _, f := range items {
		views = append(views, toFollowUpView(f))
	}
	return views
}

func toFollowUpGroupViews(groups []agenda.Group[followup.FollowUp]) []followUpGroupView {
	groupViews := make([]followUpGroupView, 0, len(groups))
	for _, g := range groups {
		groupViews = append(groupViews, followUpGroupView{Label: g.Label, Items: toFollowUpViews(g.Items)})
	}
	return groupViews
}

// followUpListResponse carries the canonical list plus its agenda grouping,
// rebuilt after every read and every mutation.
func followUpListResponse(items []followup.FollowUp, now time.Time) map[string]any {
	groups := agenda.GroupBySchedule(now, items, func(f followup.FollowUp) (time.Time, bool) {
		return f.ScheduleAt, f.Scheduled()
	})
	return map[string]any{"items": toFollowUpViews(items), "groups": toFollowUpGroupViews(groups)}
}

// handleFollowUps handles GET/POST/PUT/DELETE for /api/follow-ups
func handleFollowUps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	deps := orchestrators.FollowUpDeps{
		FollowUpStore: stores.FollowUpStore,
		GenerateID:    generateID,
		Now:           timeNow,
	}

	switch r.Method {
	case "GET":
		result, err := projections.QueryGetFollowUpGroups(ctx, projections.GetFollowUpGroupsQuery{
			UserID: sess.AccountID,
		}, projections.GetFollowUpGroupsDeps{FollowUpStore: stores.FollowUpStore}, timeNow())
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items":  toFollowUpViews(result.Items),
			"groups": toFollowUpGroupViews(result.Groups),
		})

	case "POST":
		release, ok := acquireView(w, "follow-ups")
		if !ok {
			return
		}
		defer release()

		var input struct {
			Name        string `json:"name"`
			Company     string `json:"company"`
			Description string `json:"description"`
			ScheduleAt  string `json:"schedule_at"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		scheduleAt, err := parseDateParam(input.ScheduleAt)
		if err != nil {
			http.Error(w, "schedule_at must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteCreateFollowUp(ctx, orchestrators.CreateFollowUpInput{
			UserID:      sess.AccountID,
			Name:        input.Name,
			Company:     input.Company,
			Description: input.Description,
			ScheduleAt:  scheduleAt,
		}, deps)
		if err != nil {
			writeMutationError(w, err, followUpListResponse(items, timeNow()))
			return
		}
		writeJSON(w, http.StatusCreated, followUpListResponse(items, timeNow()))

	case "PUT":
		release, ok := acquireView(w, "follow-ups")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Company     string `json:"company"`
			Description string `json:"description"`
			ScheduleAt  string `json:"schedule_at"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		scheduleAt, err := parseDateParam(input.ScheduleAt)
		if err != nil {
			http.Error(w, "schedule_at must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteUpdateFollowUp(ctx, orchestrators.UpdateFollowUpInput{
			FollowUpID:  input.ID,
			Name:        input.Name,
			Company:     input.Company,
			Description: input.Description,
			ScheduleAt:  scheduleAt,
		}, deps)
		if err != nil {
			writeMutationError(w, err, followUpListResponse(items, timeNow()))
			return
		}
		writeJSON(w, http.StatusOK, followUpListResponse(items, timeNow()))

	case "DELETE":
		release, ok := acquireView(w, "follow-ups")
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

		items, err := orchestrators.ExecuteDeleteFollowUp(ctx, input.ID, deps)
		if err != nil {
			writeMutationError(w, err, followUpListResponse(items, timeNow()))
			return
		}
		writeJSON(w, http.StatusOK, followUpListResponse(items, timeNow()))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
