// internal/templates/pages/format.go
package pages

import (
	"strconv"
	"time"
)

// formatDate renders a short date abbreviation, or TBC for an unscheduled
// match.
func formatDate(ts *int64) string {
	if ts == nil {
		return "TBC"
	}
	return time.Unix(*ts, 0).UTC().Format("Mon 02 Jan")
}

// formatTime renders the kickoff time, empty when unscheduled.
func formatTime(ts *int64) string {
	if ts == nil {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format("15:04")
}

// dateInputValue renders a timestamp for an HTML date input.
func dateInputValue(ts *int64) string {
	if ts == nil {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format("2006-01-02")
}

// timeInputValue renders a timestamp for an HTML time input.
func timeInputValue(ts *int64) string {
	if ts == nil {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format("15:04")
}

// formatScore renders a nullable score; a dash means not recorded.
func formatScore(s *float64) string {
	if s == nil {
		return "-"
	}
	return strconv.FormatFloat(*s, 'f', -1, 64)
}

func formatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
