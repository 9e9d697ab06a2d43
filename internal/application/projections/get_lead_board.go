package projections

import (
	"context"

	"bizkit/internal/domain/lead"
)

// GetLeadBoardQuery carries query parameters.
type GetLeadBoardQuery struct {
	UserID string
}

// GetLeadBoardResult carries the query result: one column per pipeline
// stage plus the stat-card summary.
type GetLeadBoardResult struct {
	Columns []lead.Column
	Stats   lead.Stats
}

// GetLeadBoardDeps holds dependencies for GetLeadBoard.
type GetLeadBoardDeps struct {
	LeadStore LeadStore
}

// QueryGetLeadBoard builds the Kanban board for a user's pipeline.
// PRE: query.UserID is non-empty
// POST: every lead appears in exactly one column; stats cover the full set
func QueryGetLeadBoard(ctx context.Context, query GetLeadBoardQuery, deps GetLeadBoardDeps) (GetLeadBoardResult, error) {
	leads, err := deps.LeadStore.ListByUser(ctx, query.UserID)
	if err != nil {
		return GetLeadBoardResult{}, err
	}

	return GetLeadBoardResult{
		Columns: lead.ColumnsByStatus(leads),
		Stats:   lead.ComputeStats(leads),
	}, nil
}
