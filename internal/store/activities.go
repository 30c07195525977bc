package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theirongolddev/crmd/internal/model"
)

// CreateActivity inserts an activity and returns the stored record.
func (s *Store) CreateActivity(ctx context.Context, a model.Activity) (*model.Activity, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (deal_id, contact_id, type, description, next_steps, due_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullInt(a.DealID), nullInt(a.ContactID), nullStr(a.Type),
		nullStr(a.Description), nullStr(a.NextSteps), nullStr(a.DueDate), nowRFC3339(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating activity: %w", classifyErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, deal_id, contact_id, type, description, next_steps, due_date, created_at FROM activities WHERE id = ?", id)
	created, err := scanActivity(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	return created, nil
}

// ListActivities returns activities newest first. When dealID is non-nil only
// that deal's activities are returned.
func (s *Store) ListActivities(ctx context.Context, dealID *int64) ([]model.Activity, error) {
	query := "SELECT id, deal_id, contact_id, type, description, next_steps, due_date, created_at FROM activities"
	args := []any{}
	if dealID != nil {
		query += " WHERE deal_id = ?"
		args = append(args, *dealID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	activities := []model.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// WeekBounds returns the Monday and Sunday of the week containing t, as
// YYYY-MM-DD strings suitable for TasksDueBetween.
func WeekBounds(t time.Time) (string, string) {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday counts as the end of the prior week
	}
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02")
}

// TasksDueBetween returns activities with a due date inside [from, to],
// soonest first, with the linked deal title and contact name joined in.
// Dates are ISO yyyy-mm-dd strings so lexical comparison is chronological.
func (s *Store) TasksDueBetween(ctx context.Context, from, to string) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.deal_id, a.contact_id, a.type, a.description, a.next_steps, a.due_date, a.created_at,
		        d.title AS deal_title, c.name AS contact_name
		 FROM activities a
		 LEFT JOIN deals d ON a.deal_id = d.id
		 LEFT JOIN contacts c ON a.contact_id = c.id
		 WHERE a.due_date >= ? AND a.due_date <= ?
		 ORDER BY a.due_date ASC, a.created_at DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []model.Task{}
	for rows.Next() {
		var (
			t                      model.Task
			dealTitle, contactName sql.NullString
		)
		a, err := scanActivity(func(dest ...any) error {
			return rows.Scan(append(dest, &dealTitle, &contactName)...)
		})
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.Activity = *a
		t.DealTitle = strPtr(dealTitle)
		t.ContactName = strPtr(contactName)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanActivity(scan func(dest ...any) error) (*model.Activity, error) {
	var (
		a                 model.Activity
		dealID, contactID sql.NullInt64
		typ, desc         sql.NullString
		nextSteps, due    sql.NullString
	)

	err := scan(&a.ID, &dealID, &contactID, &typ, &desc, &nextSteps, &due, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.DealID = intPtr(dealID)
	a.ContactID = intPtr(contactID)
	a.Type = strPtr(typ)
	a.Description = strPtr(desc)
	a.NextSteps = strPtr(nextSteps)
	a.DueDate = strPtr(due)
	return &a, nil
}
