package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"paycycle/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements the store ports on a single SQLite file.
// Per-user mutations are serialized by SQLite's writer lock, which provides
// the read-modify-write consistency the engine requires of its collaborator.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const userColumns = `email, name, income, last_pay_date, total_savings, total_investment,
	month_savings, month_investment, month_expenses_necessity, month_expenses_discretionary`

func scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	var lastPay string
	err := row.Scan(&u.Email, &u.Name, &u.Income, &lastPay, &u.TotalSavings, &u.TotalInvestment,
		&u.MonthSavings, &u.MonthInvestment, &u.MonthExpensesNecessity, &u.MonthExpensesDiscretionary)
	if err != nil {
		return core.User{}, err
	}
	if lastPay != "" {
		if u.LastPayDate, err = core.ParseDate(lastPay); err != nil {
			return core.User{}, fmt.Errorf("parse last pay date: %w", err)
		}
	}
	return u, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, email string) (core.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) PutUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			income = excluded.income,
			last_pay_date = excluded.last_pay_date,
			total_savings = excluded.total_savings,
			total_investment = excluded.total_investment,
			month_savings = excluded.month_savings,
			month_investment = excluded.month_investment,
			month_expenses_necessity = excluded.month_expenses_necessity,
			month_expenses_discretionary = excluded.month_expenses_discretionary`,
		u.Email, u.Name, u.Income, u.LastPayDate.String(), u.TotalSavings, u.TotalInvestment,
		u.MonthSavings, u.MonthInvestment, u.MonthExpensesNecessity, u.MonthExpensesDiscretionary)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, email string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, reason, category, description, amount, created_at, cycle
		FROM expenses WHERE email = ?`, email)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var category, createdAt string
	var cycle int64
	err := row.Scan(&e.ID, &e.Email, &e.Reason, &category, &e.Description, &e.Amount, &createdAt, &cycle)
	if err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(category)
	e.Cycle = cycle != 0
	if e.CreatedAt, err = core.ParseDate(createdAt); err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id, email string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, reason, category, description, amount, created_at, cycle
		FROM expenses WHERE id = ? AND email = ?`, id, email)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrExpenseNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) PutExpense(ctx context.Context, e core.Expense) error {
	cycle := 0
	if e.Cycle {
		cycle = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, email, reason, category, description, amount, created_at, cycle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			reason = excluded.reason,
			category = excluded.category,
			description = excluded.description,
			amount = excluded.amount,
			created_at = excluded.created_at,
			cycle = excluded.cycle`,
		e.ID, e.Email, e.Reason, string(e.Category), e.Description, e.Amount, e.CreatedAt.String(), cycle)
	if err != nil {
		return fmt.Errorf("put expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"email", e.Email,
		"category", string(e.Category),
		"amount", e.Amount)
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListNotifications(ctx context.Context, email string) ([]core.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, message, created_at FROM notifications WHERE email = ?`, email)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []core.Notification
	for rows.Next() {
		var n core.Notification
		var createdAt string
		if err := rows.Scan(&n.ID, &n.Email, &n.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.CreatedAt, err = core.ParseDate(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) PutNotification(ctx context.Context, n core.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, email, message, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		n.ID, n.Email, n.Message, n.CreatedAt.String())
	if err != nil {
		return fmt.Errorf("put notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteNotification(ctx context.Context, id, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ? AND email = ?`, id, email)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if affected == 0 {
		return core.ErrNotificationNotFound
	}
	return nil
}

// CommitPayday writes the rolled-over user record and closes the cycle on all
// of their open expenses inside one transaction, so readers never observe the
// new income alongside stale cycle flags.
func (r *SQLiteRepository) CommitPayday(ctx context.Context, u core.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payday tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET
			income = ?,
			last_pay_date = ?,
			total_savings = ?,
			total_investment = ?,
			month_savings = ?,
			month_investment = ?,
			month_expenses_necessity = ?,
			month_expenses_discretionary = ?
		WHERE email = ?`,
		u.Income, u.LastPayDate.String(), u.TotalSavings, u.TotalInvestment,
		u.MonthSavings, u.MonthInvestment, u.MonthExpensesNecessity, u.MonthExpensesDiscretionary,
		u.Email)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return core.ErrUserNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE expenses SET cycle = 0 WHERE email = ? AND cycle = 1`, u.Email); err != nil {
		return fmt.Errorf("close cycle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payday tx: %w", err)
	}

	slog.InfoContext(ctx, "Payday committed",
		"email", u.Email,
		"income", u.Income,
		"total_savings", u.TotalSavings)
	return nil
}
