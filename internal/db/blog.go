// internal/db/blog.go
package db

import (
	"context"

	"github.com/tamarside/rounders/internal/models"
)

func (q *Queries) CreateEntry(ctx context.Context, title string, text *string, date int64) (models.Entry, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO entries (title, text, date) VALUES (?, ?, ?)`,
		title, text, date)
	if err != nil {
		return models.Entry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Entry{}, err
	}
	return models.Entry{ID: id, Title: title, Text: text, Date: date}, nil
}

func (q *Queries) GetEntry(ctx context.Context, id int64) (models.Entry, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, title, text, date FROM entries WHERE id = ?`, id)
	var e models.Entry
	err := row.Scan(&e.ID, &e.Title, &e.Text, &e.Date)
	return e, err
}

// ListEntries returns blog entries newest first.
func (q *Queries) ListEntries(ctx context.Context, limit, offset int) ([]models.Entry, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, text, date FROM entries ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Text, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (q *Queries) DeleteEntry(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	return err
}

func (q *Queries) CreateAttachment(ctx context.Context, entryID *int64, name string) (models.Attachment, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO attachments (entry_id, name) VALUES (?, ?)`,
		entryID, name)
	if err != nil {
		return models.Attachment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Attachment{}, err
	}
	return models.Attachment{ID: id, EntryID: entryID, Name: name}, nil
}

func (q *Queries) ListAttachmentsByEntry(ctx context.Context, entryID int64) ([]models.Attachment, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, entry_id, name FROM attachments WHERE entry_id = ? ORDER BY id`,
		entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.EntryID, &a.Name); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (q *Queries) DeleteAttachmentsByEntry(ctx context.Context, entryID int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM attachments WHERE entry_id = ?`, entryID)
	return err
}
