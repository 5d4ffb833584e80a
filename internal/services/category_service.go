package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
)

// CategoryService manages the categories of a single owner per call.
type CategoryService struct {
	store  CategoryStore
	notify *Notifier
}

func NewCategoryService(store CategoryStore, notify *Notifier) *CategoryService {
	return &CategoryService{store: store, notify: notify}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]core.Category, error) {
	cats, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Get returns an owned category or core.ErrNotFound.
func (s *CategoryService) Get(ctx context.Context, userID string, id int64) (core.Category, error) {
	return s.store.GetCategory(ctx, userID, id)
}

// Save creates c when its id is zero and updates the owned category otherwise.
// The owner is always userID; a submitted owner is ignored.
func (s *CategoryService) Save(ctx context.Context, userID string, c core.Category) (core.Category, error) {
	c.UserID = userID
	c.Title = strings.TrimSpace(c.Title)
	c.Icon = strings.TrimSpace(c.Icon)

	if c.ID != 0 {
		if _, err := s.store.GetCategory(ctx, userID, c.ID); err != nil {
			return c, err
		}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}

	if c.ID == 0 {
		created, err := s.store.CreateCategory(ctx, c)
		if err != nil {
			return c, fmt.Errorf("save category: %w", err)
		}
		s.notify.changed(ctx, userID, amqp.EntityCategory, created.ID, amqp.ActionCreated, created.Label())
		return created, nil
	}

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return c, err
		}
		return c, fmt.Errorf("save category: %w", err)
	}
	s.notify.changed(ctx, userID, amqp.EntityCategory, c.ID, amqp.ActionUpdated, c.Label())
	return c, nil
}

// Delete removes an owned category. A missing or foreign id is a no-op, and a
// category still used by transactions yields core.ErrCategoryInUse.
func (s *CategoryService) Delete(ctx context.Context, userID string, id int64) error {
	c, err := s.store.GetCategory(ctx, userID, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	inUse, err := s.store.CategoryInUse(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if inUse {
		return core.ErrCategoryInUse
	}

	removed, err := s.store.DeleteCategory(ctx, userID, id)
	if err != nil {
		if errors.Is(err, core.ErrCategoryInUse) {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if removed {
		s.notify.changed(ctx, userID, amqp.EntityCategory, id, amqp.ActionDeleted, c.Label())
	}
	return nil
}
