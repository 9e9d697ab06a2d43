package projections

import (
	"context"
	"time"

	"bizkit/internal/domain/agenda"
	"bizkit/internal/domain/followup"
)

// GetFollowUpGroupsQuery carries query parameters.
type GetFollowUpGroupsQuery struct {
	UserID string
}

// GetFollowUpGroupsResult carries the query result: the raw list plus the
// agenda buckets built from it. Unscheduled follow-ups appear only in Items.
type GetFollowUpGroupsResult struct {
	Items  []followup.FollowUp
	Groups []agenda.Group[followup.FollowUp]
}

// GetFollowUpGroupsDeps holds dependencies for GetFollowUpGroups.
type GetFollowUpGroupsDeps struct {
	FollowUpStore FollowUpStore
}

// QueryGetFollowUpGroups retrieves a user's follow-ups bucketed by schedule
// proximity (Today, Tomorrow, This Week, Next Week).
// PRE: query.UserID is non-empty
// POST: every scheduled follow-up appears in exactly one group
// INVARIANT: bucketing depends only on calendar dates, never time of day
func QueryGetFollowUpGroups(ctx context.Context, query GetFollowUpGroupsQuery, deps GetFollowUpGroupsDeps, now time.Time) (GetFollowUpGroupsResult, error) {
	items, err := deps.FollowUpStore.ListByUser(ctx, query.UserID)
	if err != nil {
		return GetFollowUpGroupsResult{}, err
	}

	groups := agenda.GroupBySchedule(now, items, func(f followup.FollowUp) (time.Time, bool) {
		return f.ScheduleAt, f.Scheduled()
	})

	return GetFollowUpGroupsResult{Items: items, Groups: groups}, nil
}
