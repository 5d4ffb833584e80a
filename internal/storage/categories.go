package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

const categoryColumns = `id, user_id, title, icon, type, created_at, updated_at`

// ListCategories returns the categories owned by userID ordered by title.
func (r *SQLiteRepository) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY title COLLATE NOCASE, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// GetCategory returns core.ErrNotFound when id does not exist or belongs to another user.
func (r *SQLiteRepository) GetCategory(ctx context.Context, userID string, id int64) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Category{}, core.ErrNotFound
		}
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	ts := r.timestamp()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (user_id, title, icon, type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		c.UserID, c.Title, c.Icon, string(c.Type), ts, ts).Scan(&c.ID)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	c.CreatedAt = parseTime(ts)
	c.UpdatedAt = c.CreatedAt
	return c, nil
}

// UpdateCategory changes title, icon and type of an owned category.
func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET title = ?, icon = ?, type = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		c.Title, c.Icon, string(c.Type), r.timestamp(), c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, "update category")
}

// CategoryInUse reports whether any transaction references the category.
func (r *SQLiteRepository) CategoryInUse(ctx context.Context, userID string, id int64) (bool, error) {
	var inUse bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = ? AND user_id = ?)`, id, userID).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check category usage: %w", err)
	}
	return inUse, nil
}

// DeleteCategory removes an owned category and reports whether a row was removed.
// A category still referenced by transactions yields core.ErrCategoryInUse.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, core.ErrCategoryInUse
		}
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(s rowScanner) (core.Category, error) {
	var (
		c                core.Category
		typ              string
		created, updated string
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Title, &c.Icon, &typ, &created, &updated); err != nil {
		return core.Category{}, err
	}
	c.Type = core.CategoryType(typ)
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return c, nil
}
