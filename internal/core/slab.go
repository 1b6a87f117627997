package core

import "math"

// Allocation holds the percentage split of income across the four categories.
// Every slab's allocation sums to exactly 100.
type Allocation struct {
	Necessity     int `json:"necessity"`
	Discretionary int `json:"discretionary"`
	Savings       int `json:"savings"`
	Investment    int `json:"investment"`
}

type slab struct {
	max int64
	pct Allocation
}

// Slabs are consulted by ascending upper bound; the first entry whose max is
// >= income wins. The final entry is the catch-all for high incomes.
var slabs = []slab{
	{max: 20_000, pct: Allocation{Necessity: 65, Discretionary: 5, Savings: 15, Investment: 15}},
	{max: 50_000, pct: Allocation{Necessity: 55, Discretionary: 10, Savings: 15, Investment: 20}},
	{max: 100_000, pct: Allocation{Necessity: 45, Discretionary: 10, Savings: 15, Investment: 30}},
	{max: 200_000, pct: Allocation{Necessity: 40, Discretionary: 10, Savings: 10, Investment: 40}},
	{max: math.MaxInt64, pct: Allocation{Necessity: 35, Discretionary: 10, Savings: 10, Investment: 45}},
}

// LimitPercentages returns the allocation for the slab matching income.
func LimitPercentages(income int64) Allocation {
	for _, s := range slabs {
		if income <= s.max {
			return s.pct
		}
	}
	// Unreachable: the last slab max is MaxInt64.
	return slabs[len(slabs)-1].pct
}

// Percent returns the slice of the allocation assigned to category c.
func (a Allocation) Percent(c Category) int {
	switch c {
	case Necessity:
		return a.Necessity
	case Discretionary:
		return a.Discretionary
	case Savings:
		return a.Savings
	case Investment:
		return a.Investment
	default:
		return 0
	}
}

// Sum returns the total of the four percentages.
func (a Allocation) Sum() int {
	return a.Necessity + a.Discretionary + a.Savings + a.Investment
}

// CategoryLimit derives the absolute monthly limit for a category from income,
// rounded half-up to the nearest whole currency unit. Limits are always
// recomputed from current income and never stored.
func CategoryLimit(income int64, c Category) int64 {
	pct := int64(LimitPercentages(income).Percent(c))
	return (pct*income + 50) / 100
}
