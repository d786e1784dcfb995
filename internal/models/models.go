// internal/models/models.go
package models

import "fmt"

// Team competes in exactly one season, identified by Year.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year int64  `json:"year"`
}

// Player is a global registrant; team membership lives in Member rows.
type Player struct {
	ID        int64  `json:"id"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

// Member joins a player to a team. A player may belong to any number of
// teams across seasons.
type Member struct {
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
}

// Match is a fixture between two teams. Scores and play date are nullable:
// a nil score means that side's result has not been recorded, and a nil
// play date means the match is unscheduled.
type Match struct {
	ID       int64    `json:"id"`
	Team1ID  int64    `json:"team1_id"`
	Team2ID  int64    `json:"team2_id"`
	Score1   *float64 `json:"score1"`
	Score2   *float64 `json:"score2"`
	// First-inning sub-scores; may be nil even when the total is recorded.
	Score1In1 *float64 `json:"score1_in1,omitempty"`
	Score2In1 *float64 `json:"score2_in1,omitempty"`
	PlayDate  *int64   `json:"play_date"`
}

// Score is a match result from the point of view of a given "home" team.
type Score struct {
	Home *float64
	Away *float64
}

// Played reports whether the match has a result. Recording either side's
// score marks the match as played.
func (m Match) Played() bool {
	return m.Score1 != nil || m.Score2 != nil
}

// WinnerID returns the id of the winning team. A nil score compares below
// any recorded score, so a walkover (real score vs nil) is a win for the
// recorded side even at zero. Equal or both-nil scores mean no winner.
func (m Match) WinnerID() (int64, bool) {
	s1, s2 := scoreOrBelowZero(m.Score1), scoreOrBelowZero(m.Score2)
	if s1 == s2 {
		return 0, false
	}
	if s1 > s2 {
		return m.Team1ID, true
	}
	return m.Team2ID, true
}

func scoreOrBelowZero(s *float64) float64 {
	if s == nil {
		return -1
	}
	return *s
}

// Score1In2 is team 1's second-inning score, derived as total minus first
// inning; nil unless both are recorded.
func (m Match) Score1In2() *float64 {
	return inningRemainder(m.Score1, m.Score1In1)
}

// Score2In2 is team 2's second-inning score, derived as total minus first
// inning; nil unless both are recorded.
func (m Match) Score2In2() *float64 {
	return inningRemainder(m.Score2, m.Score2In1)
}

func inningRemainder(total, inning1 *float64) *float64 {
	if total == nil || inning1 == nil {
		return nil
	}
	rest := *total - *inning1
	return &rest
}

// PovScore returns the result from the given team's point of view.
func (m Match) PovScore(teamID int64) (Score, error) {
	switch teamID {
	case m.Team1ID:
		return Score{Home: m.Score1, Away: m.Score2}, nil
	case m.Team2ID:
		return Score{Home: m.Score2, Away: m.Score1}, nil
	default:
		return Score{}, fmt.Errorf("team %d did not play match %d", teamID, m.ID)
	}
}

// OpponentID returns the other side of the match for the given team.
func (m Match) OpponentID(teamID int64) (int64, error) {
	switch teamID {
	case m.Team1ID:
		return m.Team2ID, nil
	case m.Team2ID:
		return m.Team1ID, nil
	default:
		return 0, fmt.Errorf("team %d did not play match %d", teamID, m.ID)
	}
}

// ScoreFromInnings combines per-inning scores into a total. The total is nil
// only when both innings are nil; a single recorded inning stands alone.
func ScoreFromInnings(inning1, inning2 *float64) *float64 {
	if inning1 == nil && inning2 == nil {
		return nil
	}
	total := floatOrZero(inning1) + floatOrZero(inning2)
	return &total
}

func floatOrZero(s *float64) float64 {
	if s == nil {
		return 0
	}
	return *s
}

// Entry is a photo-blog post.
type Entry struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Text  *string `json:"text"`
	Date  int64   `json:"date"`
}

// Attachment is a photo file belonging to at most one blog entry. Name is
// the bare filename inside the managed uploads directory.
type Attachment struct {
	ID      int64  `json:"id"`
	EntryID *int64 `json:"entry_id"`
	Name    string `json:"name"`
}
