// Package export renders expense lists for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

// Header is the first row of every expense CSV.
var Header = []string{"Date", "Description", "Category", "Amount"}

// ExpensesCSV writes expenses as CSV to w, one row per expense in the
// given order. Fields containing commas or quotes are quoted.
func ExpensesCSV(w io.Writer, expenses []models.Expense) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range expenses {
		row := []string{
			models.FormatDate(expenses[i].Date),
			expenses[i].Description,
			models.DisplayName(expenses[i].Category),
			expenses[i].Amount.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// Filename returns the download name for an export made at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("expenses_%s.csv", now.Format("2006-01-02"))
}
