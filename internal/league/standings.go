// internal/league/standings.go
package league

import (
	"sort"
	"strings"

	"github.com/tamarside/rounders/internal/models"
)

// Standing is one derived row of a season table. Scored, Conceded and
// Difference are per-match averages over played matches.
type Standing struct {
	TeamID     int64   `json:"team_id"`
	TeamName   string  `json:"team_name"`
	Played     int     `json:"played"`
	Wins       int     `json:"wins"`
	Draws      int     `json:"draws"`
	Losses     int     `json:"losses"`
	Points     int     `json:"points"`
	Scored     float64 `json:"scored"`
	Conceded   float64 `json:"conceded"`
	Difference float64 `json:"difference"`
}

// Compute aggregates match results into one standing per team. Matches
// referencing a team outside the given set are ignored, as are unplayed
// matches. Teams with no played matches get an all-zero row.
func Compute(teams []models.Team, matches []models.Match) []Standing {
	index := make(map[int64]*Standing, len(teams))
	ordered := make([]*Standing, 0, len(teams))
	for _, t := range teams {
		entry := &Standing{TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, m := range matches {
		if !m.Played() {
			continue
		}
		entry1 := index[m.Team1ID]
		entry2 := index[m.Team2ID]
		if entry1 == nil || entry2 == nil {
			continue
		}

		entry1.Played++
		entry2.Played++

		s1 := floatOrZero(m.Score1)
		s2 := floatOrZero(m.Score2)
		entry1.Scored += s1
		entry1.Conceded += s2
		entry2.Scored += s2
		entry2.Conceded += s1

		if winnerID, ok := m.WinnerID(); ok {
			if winnerID == m.Team1ID {
				entry1.Wins++
			} else {
				entry2.Wins++
			}
		} else {
			entry1.Draws++
			entry2.Draws++
		}
	}

	standings := make([]Standing, 0, len(ordered))
	for _, entry := range ordered {
		entry.Losses = entry.Played - entry.Wins - entry.Draws
		entry.Points = 2*entry.Wins + entry.Draws

		// Averages; a zero-match team divides by 1 and stays at zero.
		divisor := float64(entry.Played)
		if entry.Played == 0 {
			divisor = 1
		}
		entry.Scored /= divisor
		entry.Conceded /= divisor
		entry.Difference = entry.Scored - entry.Conceded

		standings = append(standings, *entry)
	}

	Sort(standings, "")
	return standings
}

// Sort orders a standings table. The default (empty or unknown key) is
// points descending with difference as the tie-break. Sorting by name is
// ascending; any derived column is descending.
func Sort(standings []Standing, sortBy string) {
	less := lessFunc(sortBy)
	sort.SliceStable(standings, func(i, j int) bool {
		return less(standings[i], standings[j])
	})
}

func lessFunc(sortBy string) func(a, b Standing) bool {
	switch strings.ToLower(sortBy) {
	case "name":
		return func(a, b Standing) bool { return a.TeamName < b.TeamName }
	case "played":
		return func(a, b Standing) bool { return a.Played > b.Played }
	case "wins":
		return func(a, b Standing) bool { return a.Wins > b.Wins }
	case "draws":
		return func(a, b Standing) bool { return a.Draws > b.Draws }
	case "losses":
		return func(a, b Standing) bool { return a.Losses > b.Losses }
	case "scored":
		return func(a, b Standing) bool { return a.Scored > b.Scored }
	case "conceded":
		return func(a, b Standing) bool { return a.Conceded > b.Conceded }
	case "difference":
		return func(a, b Standing) bool { return a.Difference > b.Difference }
	default:
		return func(a, b Standing) bool {
			if a.Points != b.Points {
				return a.Points > b.Points
			}
			return a.Difference > b.Difference
		}
	}
}

func floatOrZero(s *float64) float64 {
	if s == nil {
		return 0
	}
	return *s
}
