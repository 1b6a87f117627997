package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"paycycle/internal/amqp"
	"paycycle/internal/core"
	"paycycle/internal/store"
)

// BudgetService orchestrates the budgeting engine against the persistence
// collaborator: expense add/delete, the payday rollover, and the read/delete
// surfaces around them. The AMQP client is optional; alert publishing is
// best-effort and never fails the request.
type BudgetService struct {
	store  store.Store
	alerts *amqp.Client
}

func NewBudgetService(st store.Store, alerts *amqp.Client) *BudgetService {
	return &BudgetService{
		store:  st,
		alerts: alerts,
	}
}

// AddExpenseInput is the inbound shape of an expense addition.
type AddExpenseInput struct {
	Email       string `json:"email"`
	Reason      string `json:"reason"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// UserData bundles everything the dashboard shows for one user.
type UserData struct {
	User          core.User           `json:"user"`
	Expenses      []core.Expense      `json:"expenses"`
	Notifications []core.Notification `json:"notifications"`
}

// Signup creates a user with zeroed counters and lastPayDate set to today.
func (s *BudgetService) Signup(ctx context.Context, name, email string, income int64) (core.User, error) {
	u := core.User{
		Name:        name,
		Email:       email,
		Income:      income,
		LastPayDate: core.Today(),
	}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	if _, err := s.store.GetUser(ctx, email); err == nil {
		return core.User{}, core.ErrUserExists
	} else if !core.IsNotFound(err) {
		return core.User{}, fmt.Errorf("check existing user: %w", err)
	}

	if err := s.store.PutUser(ctx, u); err != nil {
		return core.User{}, fmt.Errorf("save user: %w", err)
	}

	slog.InfoContext(ctx, "User signed up",
		"email", email,
		"income", income,
		"component", "budget_service")
	return u, nil
}

// AddExpense records an expense, applies it to the owner's counters, and
// emits an overage notification when the category's updated usage strictly
// exceeds its income-derived limit. The full next state is computed before
// any write; a failed write leaves no partial ledger update behind.
func (s *BudgetService) AddExpense(ctx context.Context, in AddExpenseInput) error {
	category, err := core.ParseCategory(in.Category)
	if err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, in.Email)
	if err != nil {
		return err
	}

	expense := core.Expense{
		ID:          uuid.NewString(),
		Email:       in.Email,
		Reason:      in.Reason,
		Category:    category,
		Description: in.Description,
		Amount:      in.Amount,
		CreatedAt:   core.Today(),
		Cycle:       true,
	}

	next, err := user.ApplyExpense(expense, core.Apply)
	if err != nil {
		return err
	}

	if err := s.store.PutExpense(ctx, expense); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	if err := s.store.PutUser(ctx, next); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"id", expense.ID,
		"email", expense.Email,
		"category", string(expense.Category),
		"amount", expense.Amount,
		"component", "budget_service",
		"operation", "add_expense")

	// Only the just-added category is checked; overages carried in other
	// categories do not re-trigger, and deletions never run this path.
	if next.OverLimit(category) {
		if err := s.emitOverage(ctx, next, expense); err != nil {
			return err
		}
	}
	return nil
}

func (s *BudgetService) emitOverage(ctx context.Context, u core.User, e core.Expense) error {
	notification := core.Notification{
		ID:        uuid.NewString(),
		Email:     u.Email,
		Message:   core.OverageMessage(e.Category),
		CreatedAt: e.CreatedAt,
	}
	if err := s.store.PutNotification(ctx, notification); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	slog.InfoContext(ctx, "Overage notification created",
		"id", notification.ID,
		"email", u.Email,
		"category", string(e.Category),
		"component", "budget_service")

	if s.alerts == nil {
		return nil
	}
	msg := &amqp.OverageAlertMessage{
		NotificationID: notification.ID,
		Email:          u.Email,
		Category:       string(e.Category),
		Message:        notification.Message,
		Usage:          u.MonthUsage(e.Category),
		Limit:          core.CategoryLimit(u.Income, e.Category),
		Date:           e.CreatedAt.String(),
	}
	if err := s.alerts.PublishOverageAlert(ctx, msg); err != nil {
		// The notification is persisted; a lost alert must not fail the add.
		slog.ErrorContext(ctx, "Failed to publish overage alert",
			"error", err,
			"notification_id", notification.ID)
	}
	return nil
}

// DeleteExpense reverses the expense's effect on the owner's counters and
// removes the record. No notification logic runs, even when the reversal
// drops a counter back under its limit.
func (s *BudgetService) DeleteExpense(ctx context.Context, id, email string) error {
	user, err := s.store.GetUser(ctx, email)
	if err != nil {
		return err
	}
	expense, err := s.store.GetExpense(ctx, id, email)
	if err != nil {
		return err
	}

	next, err := user.ApplyExpense(expense, core.Reverse)
	if err != nil {
		return err
	}

	if err := s.store.PutUser(ctx, next); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted",
		"id", id,
		"email", email,
		"category", string(expense.Category),
		"amount", expense.Amount,
		"component", "budget_service",
		"operation", "delete_expense")
	return nil
}

// Payday performs the rollover and returns the new income: leftover banked
// into lifetime savings, monthly counters zeroed, income replaced, and every
// open-cycle expense closed, committed as one unit by the store.
func (s *BudgetService) Payday(ctx context.Context, email string, newIncome int64) (int64, error) {
	if newIncome < 1 {
		return 0, core.ErrInvalidIncome
	}
	user, err := s.store.GetUser(ctx, email)
	if err != nil {
		return 0, err
	}

	next := user.RunPayday(newIncome, core.Today())
	if err := s.store.CommitPayday(ctx, next); err != nil {
		return 0, fmt.Errorf("commit payday: %w", err)
	}

	slog.InfoContext(ctx, "Payday completed",
		"email", email,
		"income", next.Income,
		"total_savings", next.TotalSavings,
		"component", "budget_service",
		"operation", "payday")
	return next.Income, nil
}

// UserData returns the user record with all of their expenses and notifications.
func (s *BudgetService) UserData(ctx context.Context, email string) (UserData, error) {
	user, err := s.store.GetUser(ctx, email)
	if err != nil {
		return UserData{}, err
	}
	expenses, err := s.store.ListExpenses(ctx, email)
	if err != nil {
		return UserData{}, fmt.Errorf("list expenses: %w", err)
	}
	notifications, err := s.store.ListNotifications(ctx, email)
	if err != nil {
		return UserData{}, fmt.Errorf("list notifications: %w", err)
	}
	return UserData{User: user, Expenses: expenses, Notifications: notifications}, nil
}

// DeleteNotification removes a notification owned by email.
func (s *BudgetService) DeleteNotification(ctx context.Context, id, email string) error {
	return s.store.DeleteNotification(ctx, id, email)
}

// Close releases the optional AMQP connection.
func (s *BudgetService) Close() error {
	if s.alerts != nil {
		if err := s.alerts.Close(); err != nil {
			return fmt.Errorf("close alerts client: %w", err)
		}
	}
	return nil
}
