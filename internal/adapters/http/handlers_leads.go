package web

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"bizkit/internal/application/listutil"
	"bizkit/internal/application/orchestrators"
	"bizkit/internal/application/projections"
	"bizkit/internal/domain/lead"
)

type leadView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Company     string     `json:"company"`
	Industry    string     `json:"industry"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	FollowUp    *time.Time `json:"follow_up,omitempty"`
	LinkedInURL string     `json:"linkedin_url"`
	AvatarURL   string     `json:"avatar_url"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toLeadView(l lead.Lead) leadView {
	v := leadView{
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		Company:     l.Company,
		Industry:    l.Industry,
		Source:      l.Source,
		Status:      l.Status,
		LinkedInURL: l.LinkedInURL,
		AvatarURL:   l.AvatarURL,
		Active:      l.Active,
		CreatedAt:   l.CreatedAt,
	}
	if !l.FollowUp.IsZero() {
		at := l.FollowUp
		v.FollowUp = &at
	}
	return v
}

func toLeadViews(items []lead.Lead) []leadView {
	views := make([]leadView, 0, len(items))
	for _, l := range items {
		views = append(views, toLeadView(l))
	}
	return views
}

// leadUpsertBody is the JSON shape shared by POST (create) and full PUT
// (update). A PUT carrying only {id, status} is the board move instead.
type leadUpsertBody struct {
	ID          string  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Company     *string `json:"company,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Source      *string `json:"source,omitempty"`
	Status      *string `json:"status,omitempty"`
	FollowUp    *string `json:"follow_up,omitempty"`
	LinkedInURL *string `json:"linkedin_url,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

func (b leadUpsertBody) statusOnly() bool {
	return b.Status != nil && b.Name == nil && b.Email == nil && b.Company == nil &&
		b.Industry == nil && b.Source == nil && b.FollowUp == nil &&
		b.LinkedInURL == nil && b.AvatarURL == nil && b.Active == nil
}

func strOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

// handleLeads handles GET/POST/PUT/DELETE for /api/leads.
// PUT {id, status} is the Kanban drag: a status-only move through
// ExecuteMoveLeadStatus. Any other PUT updates the full record.
func handleLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	deps := orchestrators.LeadDeps{
		LeadStore:  stores.LeadStore,
		GenerateID: generateID,
		Now:        timeNow,
	}

	switch r.Method {
	case "GET":
		q := r.URL.Query()
		followUpFrom, err := parseDateParam(q.Get("follow_up_from"))
		if err != nil {
			http.Error(w, "follow_up_from must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		followUpTo, err := parseDateParam(q.Get("follow_up_to"))
		if err != nil {
			http.Error(w, "follow_up_to must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		lp := listutil.ParseListParams(q,
			[]string{"name", "company", "status", "created_at"},
			[]string{"industry", "source", "status"},
		)
		result, err := projections.QueryGetLeadList(ctx, projections.GetLeadListQuery{
			UserID:       sess.AccountID,
			Tab:          q.Get("tab"),
			FollowUpFrom: followUpFrom,
			FollowUpTo:   followUpTo,
			Params:       lp,
		}, projections.GetLeadListDeps{LeadStore: stores.LeadStore})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items":     toLeadViews(result.Leads),
			"page_info": result.PageInfo,
		})

	case "POST":
		release, ok := acquireView(w, "leads")
		if !ok {
			return
		}
		defer release()

		var input leadUpsertBody
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		followUp, err := parseDateParam(strOr(input.FollowUp, ""))
		if err != nil {
			http.Error(w, "follow_up must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteCreateLead(ctx, orchestrators.CreateLeadInput{
			UserID:      sess.AccountID,
			Name:        strOr(input.Name, ""),
			Email:       strOr(input.Email, ""),
			Company:     strOr(input.Company, ""),
			Industry:    strOr(input.Industry, ""),
			Source:      strOr(input.Source, ""),
			Status:      strOr(input.Status, ""),
			FollowUp:    followUp,
			LinkedInURL: strOr(input.LinkedInURL, ""),
			AvatarURL:   strOr(input.AvatarURL, ""),
		}, deps)
		if err != nil {
			writeMutationError(w, err, map[string]any{"items": toLeadViews(items)})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"items": toLeadViews(items)})

	case "PUT":
		release, ok := acquireView(w, "leads")
		if !ok {
			return
		}
		defer release()

		var input leadUpsertBody
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		if input.statusOnly() {
			items, err := orchestrators.ExecuteMoveLeadStatus(ctx, input.ID, *input.Status, deps)
			if err != nil {
				writeMutationError(w, err, map[string]any{"items": toLeadViews(items)})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"items": toLeadViews(items)})
			return
		}

		existing, err := stores.LeadStore.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			internalError(w, err)
			return
		}

		followUp := existing.FollowUp
		if input.FollowUp != nil {
			followUp, err = parseDateParam(*input.FollowUp)
			if err != nil {
				http.Error(w, "follow_up must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		active := existing.Active
		if input.Active != nil {
			active = *input.Active
		}

		items, err := orchestrators.ExecuteUpdateLead(ctx, orchestrators.UpdateLeadInput{
			LeadID:      input.ID,
			Name:        strOr(input.Name, existing.Name),
			Email:       strOr(input.Email, existing.Email),
			Company:     strOr(input.Company, existing.Company),
			Industry:    strOr(input.Industry, existing.Industry),
			Source:      strOr(input.Source, existing.Source),
			Status:      strOr(input.Status, existing.Status),
			FollowUp:    followUp,
			LinkedInURL: strOr(input.LinkedInURL, existing.LinkedInURL),
			AvatarURL:   strOr(input.AvatarURL, existing.AvatarURL),
			Active:      active,
		}, deps)
		if err != nil {
			writeMutationError(w, err, map[string]any{"items": toLeadViews(items)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": toLeadViews(items)})

	case "DELETE":
		release, ok := acquireView(w, "leads")
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

		items, err := orchestrators.ExecuteDeleteLead(ctx, input.ID, deps)
		if err != nil {
			writeMutationError(w, err, map[string]any{"items": toLeadViews(items)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": toLeadViews(items)})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLeadBoard handles GET /api/leads/board
func handleLeadBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := projections.QueryGetLeadBoard(r.Context(), projections.GetLeadBoardQuery{
		UserID: sess.AccountID,
	}, projections.GetLeadBoardDeps{LeadStore: stores.LeadStore})
	if err != nil {
		internalError(w, err)
		return
	}

	type columnView struct {
		Status string     `json:"status"`
		Leads  []leadView `json:"leads"`
	}
	columns := make([]columnView, 0, len(result.Columns))
	for _, c := range result.Columns {
		columns = append(columns, columnView{Status: c.Status, Leads: toLeadViews(c.Leads)})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"columns": columns,
		"stats":   result.Stats,
	})
}
