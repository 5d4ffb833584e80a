package storage

import (
	"context"
	"fmt"

	"expensetracker/internal/core"
)

// RecordActivity stores an activity entry. Entries are keyed by event id, so a
// redelivered event is ignored and reported as not inserted.
func (r *SQLiteRepository) RecordActivity(ctx context.Context, e core.ActivityEntry) (bool, error) {
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = r.now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO activity_log (event_id, user_id, entity, entity_id, action, summary, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.EventID, e.UserID, e.Entity, e.EntityID, e.Action, e.Summary, occurred.UTC().Format(timeLayout))
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	return n > 0, nil
}

// ListActivity returns the newest entries for userID, at most limit.
func (r *SQLiteRepository) ListActivity(ctx context.Context, userID string, limit int) ([]core.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, user_id, entity, entity_id, action, summary, occurred_at
		 FROM activity_log WHERE user_id = ? ORDER BY occurred_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []core.ActivityEntry
	for rows.Next() {
		var (
			e        core.ActivityEntry
			occurred string
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.UserID, &e.Entity, &e.EntityID, &e.Action, &e.Summary, &occurred); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.OccurredAt = parseTime(occurred)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return out, nil
}
