package services

import (
	"context"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
)

// CategoryStore is the owner-scoped category persistence the services need.
type CategoryStore interface {
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	GetCategory(ctx context.Context, userID string, id int64) (core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	CategoryInUse(ctx context.Context, userID string, id int64) (bool, error)
	DeleteCategory(ctx context.Context, userID string, id int64) (bool, error)
}

type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, userID string, id int64) (core.Transaction, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, userID string, id int64) (bool, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u core.User) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
}

type ActivityReader interface {
	ListActivity(ctx context.Context, userID string, limit int) ([]core.ActivityEntry, error)
}

// EventPublisher sends activity messages. *amqp.Client implements it.
type EventPublisher interface {
	PublishActivity(ctx context.Context, msg *amqp.ActivityMessage) error
}
