package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

// SortField selects the expense attribute to sort by.
type SortField string

// Sort fields.
const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// SortDirection is ascending or descending.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSort validates a field and direction, defaulting to newest first.
func ParseSort(field, direction string) (SortField, SortDirection, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(field)))
	d := SortDirection(strings.ToLower(strings.TrimSpace(direction)))
	if f == "" {
		f = SortByDate
	}
	if d == "" {
		d = Descending
	}
	if f != SortByDate && f != SortByAmount {
		return "", "", fmt.Errorf("%w: unknown sort field %q", models.ErrValidation, field)
	}
	if d != Ascending && d != Descending {
		return "", "", fmt.Errorf("%w: unknown sort direction %q", models.ErrValidation, direction)
	}
	return f, d, nil
}

// SortExpenses returns a stably sorted copy of expenses.
func SortExpenses(expenses []models.Expense, field SortField, direction SortDirection) []models.Expense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		var c int
		if field == SortByAmount {
			c = a.Amount.Cmp(b.Amount)
		} else {
			c = a.Date.Compare(b.Date)
		}
		if direction == Descending {
			return -c
		}
		return c
	})
	return out
}

// Recent returns up to n expenses, newest first.
func Recent(expenses []models.Expense, n int) []models.Expense {
	sorted := SortExpenses(expenses, SortByDate, Descending)
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CategoryShare is one category's portion of total spending.
type CategoryShare struct {
	Category   models.Category
	Amount     decimal.Decimal
	Percentage int
}

// CategoryBreakdown returns spending per present category, largest first,
// ties broken by category order.
func CategoryBreakdown(expenses []models.Expense) []CategoryShare {
	total := TotalAmount(expenses)
	groups := GroupByCategory(expenses)

	shares := make([]CategoryShare, 0, len(groups))
	for category, amount := range groups {
		shares = append(shares, CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: Percent(amount, total),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.Index(), b.Category.Index())
	})
	return shares
}

// TopBudgets returns up to n usages with the highest percentage first.
// Equal percentages keep their input order.
func TopBudgets(usage []Usage, n int) []Usage {
	out := slices.Clone(usage)
	slices.SortStableFunc(out, func(a, b Usage) int {
		return cmp.Compare(b.Percentage, a.Percentage)
	})
	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
