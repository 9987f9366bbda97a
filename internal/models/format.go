package models

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DisplayDateLayout is the en-US short date used in lists and exports.
const DisplayDateLayout = "Jan 2, 2006"

// FormatCurrency renders an amount as US dollars, e.g. "$1,234.50" or "-$1,250.45".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", rounded.InexactFloat64())
}

// FormatDate renders a date as "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}
