package services

import (
	"context"
	"log/slog"

	"expensetracker/internal/amqp"
)

// Notifier fans a persisted change out to the activity queue and the summary
// cache. Publishing is best-effort: a failure is logged and never returned.
// A nil *Notifier does nothing.
type Notifier struct {
	events    EventPublisher
	summaries *SummaryService
	observe   func(entity string, err error)
}

func NewNotifier(events EventPublisher, summaries *SummaryService) *Notifier {
	return &Notifier{events: events, summaries: summaries}
}

// WithObserver registers f to be told about every publish attempt.
func (n *Notifier) WithObserver(f func(entity string, err error)) *Notifier {
	n.observe = f
	return n
}

func (n *Notifier) changed(ctx context.Context, userID, entity string, id int64, action, summary string) {
	if n == nil {
		return
	}
	if n.summaries != nil {
		n.summaries.Invalidate(userID)
	}
	if n.events == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping activity message",
			"entity", entity, "action", action)
		return
	}

	err := n.events.PublishActivity(ctx, amqp.NewActivityMessage(userID, entity, id, action, summary))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish activity message",
			"entity", entity,
			"id", id,
			"action", action,
			"error", err)
	}
	if n.observe != nil {
		n.observe(entity, err)
	}
}
