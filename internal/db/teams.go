// internal/db/teams.go
package db

import (
	"context"
	"strings"

	"github.com/tamarside/rounders/internal/models"
	"github.com/tamarside/rounders/internal/querybuilder"
)

const teamColumns = "id, name, year"

func (q *Queries) CreateTeam(ctx context.Context, name string, year int64) (models.Team, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO teams (name, year) VALUES (?, ?)`, name, year)
	if err != nil {
		return models.Team{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Team{}, err
	}
	return models.Team{ID: id, Name: name, Year: year}, nil
}

func (q *Queries) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Year)
	return t, err
}

func (q *Queries) UpdateTeamName(ctx context.Context, id int64, name string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE teams SET name = ? WHERE id = ?`, name, id)
	return err
}

type ListTeamsParams struct {
	Year   *int64
	Limit  int
	Offset int
}

func (q *Queries) ListTeams(ctx context.Context, params ListTeamsParams) ([]models.Team, error) {
	builder := querybuilder.Select(teamColumns).
		From("teams").
		OrderBy("id").
		Limit(params.Limit).
		Offset(params.Offset)
	if params.Year != nil {
		builder.Where(querybuilder.Eq("year", *params.Year))
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

	return scanTeams(rows)
}

// ListTeamsByYear returns every team of the given season, unpaginated, for
// the standings calculation.
func (q *Queries) ListTeamsByYear(ctx context.Context, year int64) ([]models.Team, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE year = ? ORDER BY id`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTeams(rows)
}

func (q *Queries) ListTeamsByIDs(ctx context.Context, ids []int64) ([]models.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := querybuilder.Select(teamColumns).
		From("teams").
		Where(querybuilder.In("id", int64Values(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTeams(rows)
}

func (q *Queries) DeleteTeams(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM teams WHERE id IN (`+inPlaceholders(len(ids))+`)`,
		int64Values(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteMembersByTeamIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM members WHERE team_id IN (`+inPlaceholders(len(ids))+`)`,
		int64Values(ids)...)
	return err
}

func (q *Queries) DeleteMatchesByTeamIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	args := append(int64Values(ids), int64Values(ids)...)
	placeholders := inPlaceholders(len(ids))
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM matches WHERE team1_id IN (`+placeholders+`) OR team2_id IN (`+placeholders+`)`,
		args...)
	return err
}

func scanTeams(rows rowScanner) ([]models.Team, error) {
	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Year); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func int64Values(ids []int64) []any {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return values
}

func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
