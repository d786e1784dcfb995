// internal/league/grouping.go
package league

import (
	"sort"
	"time"

	"github.com/tamarside/rounders/internal/models"
)

// WeekGroup is a bucket of matches falling in the same Monday-start week.
// WeekStart is nil for the unscheduled bucket.
type WeekGroup struct {
	WeekStart *int64
	Matches   []models.Match
}

// WeekStart returns the Unix timestamp of the Monday 00:00 UTC beginning
// the week containing ts.
func WeekStart(ts int64) int64 {
	t := time.Unix(ts, 0).UTC()
	// time.Weekday counts Sunday as 0; shift so Monday is day zero.
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysSinceMonday)
	return monday.Unix()
}

// GroupByWeek buckets matches by the week containing their play date,
// newest week first. Unscheduled matches form their own bucket placed
// first: a missing date is treated as further in the future than any
// concrete date.
func GroupByWeek(matches []models.Match) []WeekGroup {
	var unscheduled []models.Match
	buckets := make(map[int64][]models.Match)
	for _, m := range matches {
		if m.PlayDate == nil {
			unscheduled = append(unscheduled, m)
			continue
		}
		start := WeekStart(*m.PlayDate)
		buckets[start] = append(buckets[start], m)
	}

	starts := make([]int64, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] > starts[j] })

	groups := make([]WeekGroup, 0, len(starts)+1)
	if len(unscheduled) > 0 {
		groups = append(groups, WeekGroup{Matches: unscheduled})
	}
	for _, start := range starts {
		weekStart := start
		bucket := buckets[start]
		SortMatchesByDateDesc(bucket)
		groups = append(groups, WeekGroup{WeekStart: &weekStart, Matches: bucket})
	}
	return groups
}

// SortMatchesByDateDesc orders matches newest first, with unscheduled
// matches ahead of every dated one.
func SortMatchesByDateDesc(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := matches[i].PlayDate, matches[j].PlayDate
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return true
		case dj == nil:
			return false
		default:
			return *di > *dj
		}
	})
}
