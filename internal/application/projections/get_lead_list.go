package projections

import (
	"context"
	"sort"
	"strings"
	"time"

	"bizkit/internal/application/listutil"
	"bizkit/internal/domain/lead"
)

// GetLeadListQuery carries query parameters. Filters recognise the keys
// "industry", "source" and "status"; Tab selects active or inactive leads.
type GetLeadListQuery struct {
	UserID       string
	Tab          string // "active", "inactive" or "" for all
	FollowUpFrom time.Time
	FollowUpTo   time.Time
	Params       listutil.ListParams
}

// GetLeadListResult carries the query result.
type GetLeadListResult struct {
	Leads    []lead.Lead
	PageInfo listutil.PageInfo
}

// GetLeadListDeps holds dependencies for GetLeadList.
type GetLeadListDeps struct {
	LeadStore LeadStore
}

// QueryGetLeadList retrieves a filtered, paginated page of a user's leads.
// The lead sets are small enough that filtering happens in memory on the
// full per-user list, the same list the board projection consumes.
// PRE: query.UserID is non-empty
// POST: PageInfo.Total counts leads matching the filters, not the page size
func QueryGetLeadList(ctx context.Context, query GetLeadListQuery, deps GetLeadListDeps) (GetLeadListResult, error) {
	all, err := deps.LeadStore.ListByUser(ctx, query.UserID)
	if err != nil {
		return GetLeadListResult{}, err
	}

	var matched []lead.Lead
	for _, l := range all {
		if !matchesLeadQuery(l, query) {
			continue
		}
		matched = append(matched, l)
	}

	sortLeads(matched, query.Params.SortParams)

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, len(matched))
	start, end := info.Slice()

	return GetLeadListResult{Leads: matched[start:end], PageInfo: info}, nil
}

// sortLeads orders matched leads by the requested column. An empty sort
// keeps store order (newest first).
func sortLeads(leads []lead.Lead, params listutil.SortParams) {
	if params.Sort == "" {
		return
	}
	less := func(a, b lead.Lead) bool { return false }
	switch params.Sort {
	case "name":
		less = func(a, b lead.Lead) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "company":
		less = func(a, b lead.Lead) bool { return strings.ToLower(a.Company) < strings.ToLower(b.Company) }
	case "status":
		less = func(a, b lead.Lead) bool { return a.Status < b.Status }
	case "created_at":
		less = func(a, b lead.Lead) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(leads, func(i, j int) bool {
		if params.Dir == "desc" {
			return less(leads[j], leads[i])
		}
		return less(leads[i], leads[j])
	})
}

func matchesLeadQuery(l lead.Lead, query GetLeadListQuery) bool {
	switch query.Tab {
	case "active":
		if !l.Active {
			return false
		}
	case "inactive":
		if l.Active {
			return false
		}
	}

	filters := query.Params.Filters
	if v := filters["industry"]; v != "" && l.Industry != v {
		return false
	}
	if v := filters["source"]; v != "" && l.Source != v {
		return false
	}
	if v := filters["status"]; v != "" && l.Status != v {
		return false
	}

	if !query.FollowUpFrom.IsZero() {
		if l.FollowUp.IsZero() || l.FollowUp.Before(query.FollowUpFrom) {
			return false
		}
	}
	if !query.FollowUpTo.IsZero() {
		if l.FollowUp.IsZero() || l.FollowUp.After(query.FollowUpTo) {
			return false
		}
	}

	if q := query.Params.Search; q != "" {
		needle := strings.ToLower(q)
		if !strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(l.Email), needle) &&
			!strings.Contains(strings.ToLower(l.Company), needle) {
			return false
		}
	}
	return true
}
