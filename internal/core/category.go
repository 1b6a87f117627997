package core

import "fmt"

const (
	Necessity     Category = "expense (necessity)"
	Discretionary Category = "expense (discretionary)"
	Savings       Category = "savings"
	Investment    Category = "investment"
)

// Category is the closed set of budget categories. The raw value doubles as the
// human label used in notification messages.
type Category string

// Categories returns the four categories in slab-table order.
func Categories() []Category {
	return []Category{Necessity, Discretionary, Savings, Investment}
}

// IsValid reports whether c is one of the four known categories.
func (c Category) IsValid() bool {
	switch c {
	case Necessity, Discretionary, Savings, Investment:
		return true
	default:
		return false
	}
}

// ParseCategory converts a raw string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}
