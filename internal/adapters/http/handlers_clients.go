package web

import (
	"net/http"
	"time"

	"bizkit/internal/application/orchestrators"
	"bizkit/internal/domain/client"
)

type clientView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Company        string    `json:"company"`
	CompanyWebsite string    `json:"company_website"`
	Industry       string    `json:"industry"`
	Source         string    `json:"source"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	LinkedIn       string    `json:"linkedin"`
	Phone          string    `json:"phone"`
	Active         bool      `json:"active"`
	BillingName    string    `json:"billing_name"`
	BillingEmail   string    `json:"billing_email"`
	BillingABN     string    `json:"billing_abn"`
	CreatedAt      time.Time `json:"created_at"`
}

func clientListResponse(items []client.Client) map[string]any {
	views := make([]clientView, 0, len(items))
	for _, c := range items {
		views = append(views, clientView{
			ID:             c.ID,
			Name:           c.Name,
			Email:          c.Email,
			Company:        c.Company,
			CompanyWebsite: c.CompanyWebsite,
			Industry:       c.Industry,
			Source:         c.Source,
			City:           c.City,
			Country:        c.Country,
			LinkedIn:       c.LinkedIn,
			Phone:          c.Phone,
			Active:         c.Active,
			BillingName:    c.BillingName,
			BillingEmail:   c.BillingEmail,
			BillingABN:     c.BillingABN,
			CreatedAt:      c.CreatedAt,
		})
	}
	return map[string]any{"items": views}
}

// handleClients handles GET/POST/PUT/DELETE for /api/clients. POST and
// PUT share a body; an empty id creates a record.
func handleClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requireSession(w, r); !ok {
		return
	}

	deps := orchestrators.ClientDeps{
		ClientStore: stores.ClientStore,
		GenerateID:  generateID,
		Now:         timeNow,
	}

	switch r.Method {
	case "GET":
		items, err := stores.ClientStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clientListResponse(items))

	case "POST", "PUT":
		release, ok := acquireView(w, "clients")
		if !ok {
			return
		}
		defer release()

		var input struct {
			ID             string `json:"id,omitempty"`
			Name           string `json:"name"`
			Email          string `json:"email"`
			Company        string `json:"company"`
			CompanyWebsite string `json:"company_website"`
			Industry       string `json:"industry"`
			Source         string `json:"source"`
			City           string `json:"city"`
			Country        string `json:"country"`
			LinkedIn       string `json:"linkedin"`
			Phone          string `json:"phone"`
			Active         bool   `json:"active"`
			BillingName    string `json:"billing_name"`
			BillingEmail   string `json:"billing_email"`
			BillingABN     string `json:"billing_abn"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		items, err := orchestrators.ExecuteSaveClient(ctx, orchestrators.SaveClientInput{
			ClientID:       input.ID,
			Name:           input.Name,
			Email:          input.Email,
			Company:        input.Company,
			CompanyWebsite: input.CompanyWebsite,
			Industry:       input.Industry,
			Source:         input.Source,
			City:           input.City,
			Country:        input.Country,
			LinkedIn:       input.LinkedIn,
			Phone:          input.Phone,
			Active:         input.Active,
			BillingName:    input.BillingName,
			BillingEmail:   input.BillingEmail,
			BillingABN:     input.BillingABN,
		}, deps)
		if err != nil {
			writeMutationError(w, err, clientListResponse(items))
			return
		}
		status := http.StatusOK
		if r.Method == "POST" {
			status = http.StatusCreated
		}
		writeJSON(w, status, clientListResponse(items))

	case "DELETE":
		release, ok := acquireView(w, "clients")
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

		items, err := orchestrators.ExecuteDeleteClient(ctx, input.ID, deps)
		if err != nil {
			writeMutationError(w, err, clientListResponse(items))
			return
		}
		writeJSON(w, http.StatusOK, clientListResponse(items))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
