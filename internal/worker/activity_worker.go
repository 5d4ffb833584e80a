package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
)

// ActivityRecorder stores activity entries idempotently by event id.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, e core.ActivityEntry) (bool, error)
}

// ActivityWorker turns activity messages into activity log entries.
type ActivityWorker struct {
	store ActivityRecorder
}

func NewActivityWorker(store ActivityRecorder) *ActivityWorker {
	return &ActivityWorker{store: store}
}

// HandleActivityMessage stores msg. Redelivered messages are acknowledged
// without writing a second entry.
func (w *ActivityWorker) HandleActivityMessage(ctx context.Context, msg *amqp.ActivityMessage) error {
	inserted, err := w.store.RecordActivity(ctx, core.ActivityEntry{
		EventID:    msg.EventID,
		UserID:     msg.UserID,
		Entity:     msg.Entity,
		EntityID:   msg.EntityID,
		Action:     msg.Action,
		Summary:    msg.Summary,
		OccurredAt: msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	if !inserted {
		slog.InfoContext(ctx, "Skipping duplicate activity message", "event_id", msg.EventID)
		return nil
	}
	slog.InfoContext(ctx, "Recorded activity",
		"event_id", msg.EventID,
		"entity", msg.Entity,
		"action", msg.Action)
	return nil
}
