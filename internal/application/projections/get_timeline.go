package projections

import (
	"context"
	"time"

	"bizkit/internal/domain/timeline"
)

// GetTimelineQuery carries query parameters.
type GetTimelineQuery struct {
	Year  int
	Month time.Month
}

// GetTimelineResult carries the query result.
type GetTimelineResult struct {
	Month timeline.Month
}

// GetTimelineDeps holds dependencies for GetTimeline.
type GetTimelineDeps struct {
	ProjectStore ProjectStore
}

// QueryGetTimeline lays out all projects on the requested month grid.
// PRE: query names a real calendar month
// POST: every project gets a layout entry; only those starting in the
// requested month are visible
func QueryGetTimeline(ctx context.Context, query GetTimelineQuery, deps GetTimelineDeps, today time.Time) (GetTimelineResult, error) {
	projects, err := deps.ProjectStore.List(ctx)
	if err != nil {
		return GetTimelineResult{}, err
	}

	month, err := timeline.LayoutMonth(timeline.Window{Year: query.Year, Month: query.Month}, projects, today)
	if err != nil {
		return GetTimelineResult{}, err
	}

	return GetTimelineResult{Month: month}, nil
}
