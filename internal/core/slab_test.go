package core

import "testing"

func TestLimitPercentagesSumTo100(t *testing.T) {
	incomes := []int64{1, 500, 19_999, 20_000, 20_001, 50_000, 99_999, 100_000, 150_000, 200_000, 200_001, 5_000_000}
	for _, income := range incomes {
		if sum := LimitPercentages(income).Sum(); sum != 100 {
			t.Fatalf("income %d: percentages sum to %d, want 100", income, sum)
		}
	}
}

func TestLimitPercentagesBrackets(t *testing.T) {
	cases := []struct {
		income int64
		want   Allocation
	}{
		{20_000, Allocation{65, 5, 15, 15}},
		{20_001, Allocation{55, 10, 15, 20}},
		{50_000, Allocation{55, 10, 15, 20}},
		{100_000, Allocation{45, 10, 15, 30}},
		{200_000, Allocation{40, 10, 10, 40}},
		{200_001, Allocation{35, 10, 10, 45}},
		{10_000_000, Allocation{35, 10, 10, 45}},
	}
	for _, tc := range cases {
		if got := LimitPercentages(tc.income); got != tc.want {
			t.Fatalf("income %d: got %+v, want %+v", tc.income, got, tc.want)
		}
	}
}

func TestCategoryLimit(t *testing.T) {
	cases := []struct {
		income   int64
		category Category
		want     int64
	}{
		{20_000, Necessity, 13_000},
		{20_001, Necessity, 11_001}, // round(0.55 * 20001) rounds half up
		{20_000, Discretionary, 1_000},
		{20_000, Savings, 3_000},
		{20_000, Investment, 3_000},
		{50_000, Investment, 10_000},
		{300_000, Investment, 135_000},
	}
	for _, tc := range cases {
		if got := CategoryLimit(tc.income, tc.category); got != tc.want {
			t.Fatalf("CategoryLimit(%d, %s) = %d, want %d", tc.income, tc.category, got, tc.want)
		}
	}
}
