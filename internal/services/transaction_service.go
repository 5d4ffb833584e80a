package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
)

// TransactionService manages transactions and keeps each one tied to a
// category of the same owner.
type TransactionService struct {
	store      TransactionStore
	categories CategoryStore
	notify     *Notifier
}

func NewTransactionService(store TransactionStore, categories CategoryStore, notify *Notifier) *TransactionService {
	return &TransactionService{store: store, categories: categories, notify: notify}
}

func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *TransactionService) Get(ctx context.Context, userID string, id int64) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, id)
}

// CategoryOptions returns the caller's categories for the edit form.
func (s *TransactionService) CategoryOptions(ctx context.Context, userID string) ([]core.Category, error) {
	cats, err := s.categories.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list category options: %w", err)
	}
	return cats, nil
}

// Save creates or fully replaces a transaction. A blank date means today.
func (s *TransactionService) Save(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error) {
	t.UserID = userID
	t.Note = strings.TrimSpace(t.Note)
	t.Category = nil

	if t.ID != 0 {
		if _, err := s.store.GetTransaction(ctx, userID, t.ID); err != nil {
			return t, err
		}
	}
	if t.Date.IsZero() {
		t.Date = core.Today()
	}

	verr := &core.ValidationErrors{}
	if v, ok := core.AsValidation(t.Validate()); ok {
		verr.Merge(v)
	}
	var category core.Category
	if t.CategoryID > 0 {
		c, err := s.categories.GetCategory(ctx, userID, t.CategoryID)
		switch {
		case errors.Is(err, core.ErrNotFound):
			verr.Add("CategoryId", "Please select one of your categories.")
		case err != nil:
			return t, fmt.Errorf("check category: %w", err)
		default:
			category = c
		}
	}
	if err := verr.OrNil(); err != nil {
		return t, err
	}

	if t.ID == 0 {
		created, err := s.store.CreateTransaction(ctx, t)
		if errors.Is(err, core.ErrNotFound) {
			return t, categoryGone()
		}
		if err != nil {
			return t, fmt.Errorf("save transaction: %w", err)
		}
		created.Category = &category
		s.notify.changed(ctx, userID, amqp.EntityTransaction, created.ID, amqp.ActionCreated, describe(created.Amount, category))
		return created, nil
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return t, s.updateMiss(ctx, userID, t.ID)
		}
		return t, fmt.Errorf("save transaction: %w", err)
	}
	t.Category = &category
	s.notify.changed(ctx, userID, amqp.EntityTransaction, t.ID, amqp.ActionUpdated, describe(t.Amount, category))
	return t, nil
}

// Delete removes an owned transaction. A missing or foreign id is a no-op.
func (s *TransactionService) Delete(ctx context.Context, userID string, id int64) error {
	t, err := s.store.GetTransaction(ctx, userID, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	removed, err := s.store.DeleteTransaction(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if removed {
		var c core.Category
		if t.Category != nil {
			c = *t.Category
		}
		s.notify.changed(ctx, userID, amqp.EntityTransaction, id, amqp.ActionDeleted, describe(t.Amount, c))
	}
	return nil
}

// categoryGone reports a category removed between the ownership check and the write.
// updateMiss tells a row deleted mid-update apart from a category that went
// away under it.
func (s *TransactionService) updateMiss(ctx context.Context, userID string, id int64) error {
	_, err := s.store.GetTransaction(ctx, userID, id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.ErrNotFound
	case err != nil:
		return fmt.Errorf("save transaction: %w", err)
	}
	return categoryGone()
}

func categoryGone() error {
	v := &core.ValidationErrors{}
	v.Add("CategoryId", "Please select one of your categories.")
	return v
}

func describe(amount core.Money, c core.Category) string {
	return strings.TrimSpace(amount.String() + " " + c.Label())
}
