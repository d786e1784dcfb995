// internal/db/matches.go
package db

import (
	"context"

	"github.com/tamarside/rounders/internal/models"
	"github.com/tamarside/rounders/internal/querybuilder"
)

const matchColumns = "id, team1_id, team2_id, score1, score2, score1_in1, score2_in1, play_date"

type CreateMatchParams struct {
	Team1ID   int64
	Team2ID   int64
	Score1    *float64
	Score2    *float64
	Score1In1 *float64
	Score2In1 *float64
	PlayDate  *int64
}

func (q *Queries) CreateMatch(ctx context.Context, params CreateMatchParams) (models.Match, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO matches (team1_id, team2_id, score1, score2, score1_in1, score2_in1, play_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		params.Team1ID, params.Team2ID,
		params.Score1, params.Score2,
		params.Score1In1, params.Score2In1,
		params.PlayDate)
	if err != nil {
		return models.Match{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Match{}, err
	}
	return models.Match{
		ID:        id,
		Team1ID:   params.Team1ID,
		Team2ID:   params.Team2ID,
		Score1:    params.Score1,
		Score2:    params.Score2,
		Score1In1: params.Score1In1,
		Score2In1: params.Score2In1,
		PlayDate:  params.PlayDate,
	}, nil
}

func (q *Queries) GetMatch(ctx context.Context, id int64) (models.Match, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	var m models.Match
	err := row.Scan(&m.ID, &m.Team1ID, &m.Team2ID,
		&m.Score1, &m.Score2, &m.Score1In1, &m.Score2In1, &m.PlayDate)
	return m, err
}

type UpdateMatchParams struct {
	ID        int64
	Score1    *float64
	Score2    *float64
	Score1In1 *float64
	Score2In1 *float64
	PlayDate  *int64
}

func (q *Queries) UpdateMatch(ctx context.Context, params UpdateMatchParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE matches
		 SET score1 = ?, score2 = ?, score1_in1 = ?, score2_in1 = ?, play_date = ?
		 WHERE id = ?`,
		params.Score1, params.Score2,
		params.Score1In1, params.Score2In1,
		params.PlayDate, params.ID)
	return err
}

func (q *Queries) DeleteMatches(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM matches WHERE id IN (`+inPlaceholders(len(ids))+`)`,
		int64Values(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type ListMatchesParams struct {
	// TeamID filters to matches where the team played either side.
	TeamID *int64
	// Before keeps matches with play_date strictly before the timestamp.
	Before *int64
	// After keeps matches with play_date at or after the timestamp.
	After  *int64
	Limit  int
	Offset int
}

func (q *Queries) ListMatches(ctx context.Context, params ListMatchesParams) ([]models.Match, error) {
	builder := querybuilder.Select(matchColumns).
		From("matches").
		OrderBy("id").
		Limit(params.Limit).
		Offset(params.Offset)
	if params.Before != nil {
		builder.Where(querybuilder.Lt("play_date", *params.Before))
	}
	if params.After != nil {
		builder.Where(querybuilder.Gte("play_date", *params.After))
	}
	if params.TeamID != nil {
		builder.Where(querybuilder.Or(
			querybuilder.Eq("team1_id", *params.TeamID),
			querybuilder.Eq("team2_id", *params.TeamID),
		))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

// ListSeasonMatches returns matches where both sides belong to the given
// season year. Season membership is decided by the teams' year, not the
// match date.
func (q *Queries) ListSeasonMatches(ctx context.Context, year int64) ([]models.Match, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT m.id, m.team1_id, m.team2_id, m.score1, m.score2, m.score1_in1, m.score2_in1, m.play_date
		 FROM matches m
		 JOIN teams t1 ON t1.id = m.team1_id
		 JOIN teams t2 ON t2.id = m.team2_id
		 WHERE t1.year = ? AND t2.year = ?
		 ORDER BY m.id`,
		year, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

// ListTeamMatches returns every match the team played, unpaginated.
func (q *Queries) ListTeamMatches(ctx context.Context, teamID int64) ([]models.Match, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE team1_id = ? OR team2_id = ?
		 ORDER BY id`,
		teamID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatches(rows rowScanner) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.Team1ID, &m.Team2ID,
			&m.Score1, &m.Score2, &m.Score1In1, &m.Score2In1, &m.PlayDate); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
