package aggregate

import (
	"slices"
	"time"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

// FilterByDateRange keeps expenses dated within [start, end], both ends
// inclusive, in input order.
func FilterByDateRange(expenses []models.Expense, start, end time.Time) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCategory keeps expenses whose category is listed. An empty list
// keeps everything.
func FilterByCategory(expenses []models.Expense, categories []models.Category) []models.Expense {
	if len(categories) == 0 {
		return slices.Clone(expenses)
	}
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if slices.Contains(categories, e.Category) {
			out = append(out, e)
		}
	}
	return out
}

// MonthStart returns midnight on the first day of now's month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
