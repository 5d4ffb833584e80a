package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

const transactionSelect = `
	SELECT t.id, t.user_id, t.category_id, t.amount_cents, t.note, t.date, t.created_at, t.updated_at,
	       c.id, c.user_id, c.title, c.icon, c.type, c.created_at, c.updated_at
	FROM transactions t
	JOIN categories c ON c.id = t.category_id`

// ListTransactions returns the user's transactions joined with their category,
// newest date first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		transactionSelect+` WHERE t.user_id = ? ORDER BY t.date DESC, t.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// GetTransaction returns core.ErrNotFound when id does not exist or belongs to another user.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID string, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = ? AND t.user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, core.ErrNotFound
		}
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// CreateTransaction inserts t only when its category belongs to the same user;
// otherwise it returns core.ErrNotFound.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	ts := r.timestamp()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, category_id, amount_cents, note, date, created_at, updated_at)
		 SELECT ?, ?, ?, ?, ?, ?, ?
		 WHERE EXISTS (SELECT 1 FROM categories WHERE id = ? AND user_id = ?)
		 RETURNING id`,
		t.UserID, t.CategoryID, t.Amount.Cents, t.Note, t.Date.String(), ts, ts,
		t.CategoryID, t.UserID).Scan(&t.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, core.ErrNotFound
		}
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	t.CreatedAt = parseTime(ts)
	t.UpdatedAt = t.CreatedAt
	return t, nil
}

// UpdateTransaction replaces category, amount, note and date of an owned
// transaction. The new category must belong to the same user.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET category_id = ?, amount_cents = ?, note = ?, date = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?
		   AND EXISTS (SELECT 1 FROM categories WHERE id = ? AND user_id = ?)`,
		t.CategoryID, t.Amount.Cents, t.Note, t.Date.String(), r.timestamp(),
		t.ID, t.UserID, t.CategoryID, t.UserID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireAffected(res, "update transaction")
}

// DeleteTransaction removes an owned transaction and reports whether a row was removed.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return n > 0, nil
}

func scanTransaction(s rowScanner) (core.Transaction, error) {
	var (
		t                         core.Transaction
		c                         core.Category
		date, created, updated    string
		ctype, cCreated, cUpdated string
	)
	err := s.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount.Cents, &t.Note, &date, &created, &updated,
		&c.ID, &c.UserID, &c.Title, &c.Icon, &ctype, &cCreated, &cUpdated)
	if err != nil {
		return core.Transaction{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	t.Date = d
	t.CreatedAt = parseTime(created)
	t.UpdatedAt = parseTime(updated)
	c.Type = core.CategoryType(ctype)
	c.CreatedAt = parseTime(cCreated)
	c.UpdatedAt = parseTime(cUpdated)
	t.Category = &c
	return t, nil
}
