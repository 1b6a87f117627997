package core

import "fmt"

// Direction selects whether an expense is being applied or reversed.
type Direction int

const (
	Apply   Direction = 1
	Reverse Direction = -1
)

// ApplyExpense returns the next user state with e's amount applied to exactly
// one monthly counter, selected by category. Savings and investment mirror
// into the matching lifetime counter in the same direction. Callers invoke
// this once per expense lifecycle event: one Apply, at most one Reverse.
func (u User) ApplyExpense(e Expense, d Direction) (User, error) {
	if d != Apply && d != Reverse {
		return u, fmt.Errorf("invalid direction %d", d)
	}
	if err := e.Validate(); err != nil {
		return u, err
	}
	if e.Email != u.Email {
		return u, ErrExpenseNotFound
	}

	amount := e.Amount * int64(d)
	switch e.Category {
	case Savings:
		u.MonthSavings += amount
		u.TotalSavings += amount
	case Investment:
		u.MonthInvestment += amount
		u.TotalInvestment += amount
	case Necessity:
		u.MonthExpensesNecessity += amount
	case Discretionary:
		u.MonthExpensesDiscretionary += amount
	default:
		return u, ErrInvalidCategory
	}
	return u, nil
}

// MonthUsage returns the open-cycle counter for category c.
func (u User) MonthUsage(c Category) int64 {
	switch c {
	case Savings:
		return u.MonthSavings
	case Investment:
		return u.MonthInvestment
	case Necessity:
		return u.MonthExpensesNecessity
	case Discretionary:
		return u.MonthExpensesDiscretionary
	default:
		return 0
	}
}

// MonthTotal returns the sum of all four monthly counters.
func (u User) MonthTotal() int64 {
	return u.MonthSavings + u.MonthInvestment + u.MonthExpensesNecessity + u.MonthExpensesDiscretionary
}

// OverLimit reports whether the open-cycle usage for c strictly exceeds the
// income-derived limit. Usage equal to the limit does not count as an overage.
func (u User) OverLimit(c Category) bool {
	return u.MonthUsage(c) > CategoryLimit(u.Income, c)
}

// OverageMessage is the advisory text recorded when a category exceeds its limit.
func OverageMessage(c Category) string {
	return fmt.Sprintf("Your expenditure on %s has exceeded the limit; please tone down on it.", c)
}

// RunPayday returns the next user state after a payday rollover: the leftover
// income is banked into lifetime savings (a negative leftover reduces it),
// the four monthly counters reset, and income is replaced. Flipping the cycle
// flag on the user's open expenses is the storage side of the same transaction.
func (u User) RunPayday(newIncome int64, today Date) User {
	leftover := u.Income - u.MonthTotal()
	u.TotalSavings += leftover

	u.MonthSavings = 0
	u.MonthInvestment = 0
	u.MonthExpensesNecessity = 0
	u.MonthExpensesDiscretionary = 0

	u.Income = newIncome
	u.LastPayDate = today
	return u
}
