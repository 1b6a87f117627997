package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date without a time component, stored as YYYY-MM-DD.
	Date struct {
		time.Time
	}

	// User is the per-account aggregate the ledger mutates. Monthly counters
	// cover the open cycle only; Total* counters are lifetime.
	User struct {
		Name                       string `json:"name"`
		Email                      string `json:"email"`
		Income                     int64  `json:"income"`
		LastPayDate                Date   `json:"lastPayDate"`
		TotalSavings               int64  `json:"totalSavings"`
		TotalInvestment            int64  `json:"totalInvestment"`
		MonthSavings               int64  `json:"monthSavings"`
		MonthInvestment            int64  `json:"monthInvestment"`
		MonthExpensesNecessity     int64  `json:"monthExpensesNecessity"`
		MonthExpensesDiscretionary int64  `json:"monthExpensesDiscretionary"`
	}

	// Expense is a single ledger entry. Cycle is true while the entry belongs
	// to the still-open budgeting cycle and flips to false at payday.
	Expense struct {
		ID          string   `json:"id"`
		Email       string   `json:"email"`
		Reason      string   `json:"reason"`
		Category    Category `json:"category"`
		Description string   `json:"description"`
		Amount      int64    `json:"amount"`
		CreatedAt   Date     `json:"createdAt"`
		Cycle       bool     `json:"cycle"`
	}

	// Notification is a one-shot overage advisory. Never mutated, only
	// created by the emitter and deleted by explicit user action.
	Notification struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Message   string `json:"message"`
		CreatedAt Date   `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount    = errors.New("amount must be at least 1")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidIncome    = errors.New("invalid income")
	ErrEmptyReason      = errors.New("empty reason")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyEmail       = errors.New("empty email")

	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// IsValidation reports whether err belongs to the validation taxonomy:
// surfaced to the caller, never retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidIncome) ||
		errors.Is(err, ErrEmptyReason) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrEmptyEmail) ||
		errors.Is(err, ErrUserExists)
}

// IsNotFound reports whether err belongs to the not-found taxonomy.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrExpenseNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if u.Income < 1 {
		return ErrInvalidIncome
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Email) == "" {
		return ErrEmptyEmail
	}
	if strings.TrimSpace(e.Reason) == "" {
		return ErrEmptyReason
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount < 1 {
		return ErrInvalidAmount
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
