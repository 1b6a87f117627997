package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"paycycle/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUserRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := core.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		Income:       50_000,
		LastPayDate:  core.NewDate(2025, 7, 1),
		TotalSavings: 12_000,
		MonthSavings: 2_000,
	}
	if err := repo.PutUser(ctx, u); err != nil {
		t.Fatalf("put user: %v", err)
	}

	got, err := repo.GetUser(ctx, u.Email)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got != u {
		t.Fatalf("round trip changed user: %+v != %+v", got, u)
	}

	// Full overwrite on conflict.
	u.Income = 60_000
	u.MonthSavings = 0
	if err := repo.PutUser(ctx, u); err != nil {
		t.Fatalf("overwrite user: %v", err)
	}
	got, err = repo.GetUser(ctx, u.Email)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Income != 60_000 || got.MonthSavings != 0 {
		t.Fatalf("overwrite not applied: %+v", got)
	}

	if _, err := repo.GetUser(ctx, "ghost@example.com"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestExpenseRoundTripAndScoping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := core.Expense{
		ID:          "e1",
		Email:       "asha@example.com",
		Reason:      "rent",
		Category:    core.Necessity,
		Description: "july",
		Amount:      9_000,
		CreatedAt:   core.NewDate(2025, 7, 1),
		Cycle:       true,
	}
	if err := repo.PutExpense(ctx, e); err != nil {
		t.Fatalf("put expense: %v", err)
	}

	got, err := repo.GetExpense(ctx, "e1", e.Email)
	if err != nil {
		t.Fatalf("get expense: %v", err)
	}
	if got != e {
		t.Fatalf("round trip changed expense: %+v != %+v", got, e)
	}

	if _, err := repo.GetExpense(ctx, "e1", "other@example.com"); !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("foreign owner got %v, want ErrExpenseNotFound", err)
	}

	if err := repo.DeleteExpense(ctx, "e1"); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if _, err := repo.GetExpense(ctx, "e1", e.Email); !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("got %v after delete, want ErrExpenseNotFound", err)
	}
}

func TestCommitPaydayTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := core.User{Name: "Asha", Email: "asha@example.com", Income: 50_000, LastPayDate: core.NewDate(2025, 7, 1)}
	if err := repo.PutUser(ctx, u); err != nil {
		t.Fatalf("put user: %v", err)
	}

	expenses := []core.Expense{
		{ID: "e1", Email: u.Email, Reason: "r", Category: core.Savings, Description: "d",
			Amount: 100, CreatedAt: core.NewDate(2025, 7, 2), Cycle: true},
		{ID: "e2", Email: u.Email, Reason: "r", Category: core.Investment, Description: "d",
			Amount: 200, CreatedAt: core.NewDate(2025, 6, 2), Cycle: false},
		{ID: "e3", Email: "other@example.com", Reason: "r", Category: core.Savings, Description: "d",
			Amount: 300, CreatedAt: core.NewDate(2025, 7, 2), Cycle: true},
	}
	for _, e := range expenses {
		if err := repo.PutExpense(ctx, e); err != nil {
			t.Fatalf("put expense %s: %v", e.ID, err)
		}
	}

	next := u.RunPayday(60_000, core.NewDate(2025, 8, 1))
	if err := repo.CommitPayday(ctx, next); err != nil {
		t.Fatalf("commit payday: %v", err)
	}

	got, err := repo.GetUser(ctx, u.Email)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Income != 60_000 {
		t.Fatalf("income = %d, want 60000", got.Income)
	}

	owned, err := repo.ListExpenses(ctx, u.Email)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	for _, e := range owned {
		if e.Cycle {
			t.Fatalf("expense %s still open after payday", e.ID)
		}
	}

	foreign, err := repo.GetExpense(ctx, "e3", "other@example.com")
	if err != nil {
		t.Fatalf("get foreign expense: %v", err)
	}
	if !foreign.Cycle {
		t.Fatalf("payday must not touch other users' expenses")
	}
}

func TestCommitPaydayUnknownUser(t *testing.T) {
	repo := newTestRepo(t)
	u := core.User{Email: "ghost@example.com", Income: 10_000, LastPayDate: core.NewDate(2025, 8, 1)}
	if err := repo.CommitPayday(context.Background(), u); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n := core.Notification{ID: "n1", Email: "asha@example.com", Message: "over", CreatedAt: core.NewDate(2025, 7, 14)}
	if err := repo.PutNotification(ctx, n); err != nil {
		t.Fatalf("put notification: %v", err)
	}

	list, err := repo.ListNotifications(ctx, n.Email)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 1 || list[0] != n {
		t.Fatalf("unexpected notifications: %+v", list)
	}

	if err := repo.DeleteNotification(ctx, "n1", "other@example.com"); !errors.Is(err, core.ErrNotificationNotFound) {
		t.Fatalf("foreign delete got %v, want ErrNotificationNotFound", err)
	}
	if err := repo.DeleteNotification(ctx, "n1", n.Email); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}
