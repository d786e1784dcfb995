// internal/db/players.go
package db

import (
	"context"

	"github.com/tamarside/rounders/internal/models"
)

const playerColumns = "id, name_first, name_last"

func (q *Queries) CreatePlayer(ctx context.Context, nameFirst, nameLast string) (models.Player, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO players (name_first, name_last) VALUES (?, ?)`,
		nameFirst, nameLast)
	if err != nil {
		return models.Player{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Player{}, err
	}
	return models.Player{ID: id, NameFirst: nameFirst, NameLast: nameLast}, nil
}

func (q *Queries) GetPlayer(ctx context.Context, id int64) (models.Player, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	var p models.Player
	err := row.Scan(&p.ID, &p.NameFirst, &p.NameLast)
	return p, err
}

func (q *Queries) ListPlayers(ctx context.Context, limit, offset int) ([]models.Player, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// ListTeamMembers returns the players on a team's roster, through the
// members join table.
func (q *Queries) ListTeamMembers(ctx context.Context, teamID int64, limit, offset int) ([]models.Player, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT p.id, p.name_first, p.name_last
		 FROM players p
		 JOIN members m ON m.player_id = p.id
		 WHERE m.team_id = ?
		 ORDER BY p.id
		 LIMIT ? OFFSET ?`,
		teamID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (q *Queries) AddMember(ctx context.Context, playerID, teamID int64) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO members (player_id, team_id) VALUES (?, ?)`,
		playerID, teamID)
	return err
}

func scanPlayers(rows rowScanner) ([]models.Player, error) {
	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.NameFirst, &p.NameLast); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
