package agenda

import (
	"math"
	"time"
)

// Bucket labels, in display order.
const (
	BucketToday    = "Today"
	BucketTomorrow = "Tomorrow"
	BucketThisWeek = "This Week"
	BucketNextWeek = "Next Week"
)

// Buckets contains all bucket labels in display order.
var Buckets = []string{BucketToday, BucketTomorrow, BucketThisWeek, BucketNextWeek}

// Classify assigns a scheduled date to a relative calendar bucket.
// Both times are normalized to midnight before comparison, so the
// time-of-day component never affects the result.
// PRE: none — any pair of dates is accepted, including far past/future
// POST: returns exactly one bucket label; past dates fall into Next Week
func Classify(now, target time.Time) string {
	diff := DaysBetween(now, target)
	switch {
	case diff == 0:
		return BucketToday
	case diff == 1:
		return BucketTomorrow
	case diff > 1 && diff <= 7:
		return BucketThisWeek
	default:
		return BucketNextWeek
	}
}

// DaysBetween returns the whole number of calendar days from now to target,
// both truncated to midnight in their own locations. Negative when target
// is in the past.
// PRE: none
// POST: DaysBetween(d, d) == 0 for any d
func DaysBetween(now, target time.Time) int {
	a := midnight(now)
	b := midnight(target)
	return int(math.Floor(b.Sub(a).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Group collects the items that share a bucket label.
type Group[T any] struct {
	Label string
	Items []T
}

// GroupBySchedule buckets items by their schedule date relative to now.
// Items without a schedule date are skipped entirely. Within a group,
// items keep the order they arrived in; groups appear in bucket display
// order and empty buckets are omitted.
// PRE: scheduleAt reports an item's date and whether one is set
// POST: same input always yields the same groups; no I/O, no error paths
func GroupBySchedule[T any](now time.Time, items []T, scheduleAt func(T) (time.Time, bool)) []Group[T] {
	byLabel := make(map[string][]T)
	for _, item := range items {
		at, ok := scheduleAt(item)
		if !ok {
			continue
		}
		label := Classify(now, at)
		byLabel[label] = append(byLabel[label], item)
	}

	groups := make([]Group[T], 0, len(byLabel))
	for _, label := range Buckets {
		if bucket, ok := byLabel[label]; ok {
			groups = append(groups, Group[T]{Label: label, Items: bucket})
		}
	}
	return groups
}
