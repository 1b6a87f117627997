package store

import (
	"context"

	"paycycle/internal/core"
)

// Ports for outbound persistence adapters. The engine computes full next
// states before calling any of these; read-modify-write consistency for
// concurrent per-user mutations is the adapter's responsibility.
type (
	UserStore interface {
		// GetUser returns core.ErrUserNotFound when the email is unknown.
		GetUser(ctx context.Context, email string) (core.User, error)
		// PutUser overwrites the full user record.
		PutUser(ctx context.Context, u core.User) error
	}

	ExpenseStore interface {
		// ListExpenses returns all expenses owned by email, unordered.
		ListExpenses(ctx context.Context, email string) ([]core.Expense, error)
		// GetExpense is scoped to the owner: an id owned by a different
		// email yields core.ErrExpenseNotFound.
		GetExpense(ctx context.Context, id, email string) (core.Expense, error)
		// PutExpense upserts by id.
		PutExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	NotificationStore interface {
		ListNotifications(ctx context.Context, email string) ([]core.Notification, error)
		PutNotification(ctx context.Context, n core.Notification) error
		// DeleteNotification is scoped to the owner.
		DeleteNotification(ctx context.Context, id, email string) error
	}

	// PaydayWriter commits the payday rollover as one unit: the new user
	// state and the cycle flag flip on every open expense. No reader may
	// observe the new income with stale cycle flags.
	PaydayWriter interface {
		CommitPayday(ctx context.Context, u core.User) error
	}

	// Store is the full persistence contract the budget service depends on.
	Store interface {
		UserStore
		ExpenseStore
		NotificationStore
		PaydayWriter
	}
)
