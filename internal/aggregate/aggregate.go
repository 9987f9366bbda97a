// Package aggregate derives totals, grouped sums and budget usage from
// expense, budget and account lists. Every function is pure and leaves
// its inputs unmodified.
package aggregate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

// DayLayout is the key format used by GroupByDay.
const DayLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// TotalAmount sums expense amounts. An empty list totals zero.
func TotalAmount(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// GroupByCategory sums amounts per category. Categories without expenses
// are absent from the result.
func GroupByCategory(expenses []models.Expense) map[models.Category]decimal.Decimal {
	groups := make(map[models.Category]decimal.Decimal)
	for _, e := range expenses {
		groups[e.Category] = groups[e.Category].Add(e.Amount)
	}
	return groups
}

// GroupByDay sums amounts per calendar day over the trailing window of
// days ending today, in now's location. Every day in the window is present,
// zero if empty. Expenses outside the window are ignored.
func GroupByDay(expenses []models.Expense, days int, now time.Time) map[string]decimal.Decimal {
	groups := make(map[string]decimal.Decimal, max(days, 0))
	for _, day := range window(days, now) {
		groups[day.Format(DayLayout)] = decimal.Zero
	}

	for _, e := range expenses {
		key := e.Date.In(now.Location()).Format(DayLayout)
		if sum, ok := groups[key]; ok {
			groups[key] = sum.Add(e.Amount)
		}
	}
	return groups
}

// DayTotal is one point of a daily series.
type DayTotal struct {
	Day    string // YYYY-MM-DD
	Date   time.Time
	Amount decimal.Decimal
}

// DailySeries returns GroupByDay as a slice ordered oldest first.
func DailySeries(expenses []models.Expense, days int, now time.Time) []DayTotal {
	groups := GroupByDay(expenses, days, now)
	series := make([]DayTotal, 0, len(groups))
	for _, day := range window(days, now) {
		key := day.Format(DayLayout)
		series = append(series, DayTotal{Day: key, Date: day, Amount: groups[key]})
	}
	return series
}

// window returns midnight of each of the last days calendar days, oldest first.
func window(days int, now time.Time) []time.Time {
	if days <= 0 {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		out = append(out, today.AddDate(0, 0, -i))
	}
	return out
}

// Usage is a budget with its spending against it.
type Usage struct {
	Budget    models.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal // negative when overspent
	// Percentage is spent/amount as a whole percent, capped at 100.
	Percentage int
}

// Overspent reports whether spending exceeds the budget.
func (u Usage) Overspent() bool {
	return u.Remaining.IsNegative()
}

// BudgetUsage computes usage for each budget from the expenses in its
// category, in budget order. Callers restrict expenses to the period first.
func BudgetUsage(expenses []models.Expense, budgets []models.Budget) ([]Usage, error) {
	spent := GroupByCategory(expenses)
	usage := make([]Usage, 0, len(budgets))

	for _, b := range budgets {
		if !b.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: budget %q for %s has amount %s", models.ErrInvalidBudget, b.ID, b.Category, b.Amount)
		}
		s := spent[b.Category]
		pct := s.Div(b.Amount).Mul(hundred)
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
		usage = append(usage, Usage{
			Budget:     b,
			Spent:      s,
			Remaining:  b.Amount.Sub(s),
			Percentage: int(pct.Round(0).IntPart()),
		})
	}
	return usage, nil
}

// NetWorth sums account balances, credit balances included as negatives.
func NetWorth(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// Percent returns round(part/whole*100), or 0 when whole is not positive.
func Percent(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 0
	}
	return int(part.Div(whole).Mul(hundred).Round(0).IntPart())
}
