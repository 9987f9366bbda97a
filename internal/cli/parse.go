package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

const dateLayout = "2006-01-02"

// amountRegex matches amounts like "5", "5.50", "5,50", "$1,250.45"
// after the sign and currency symbol are stripped.
var amountRegex = regexp.MustCompile(`^(?:\d{1,3}(?:,\d{3})+|\d+)(?:[.,]\d{1,2})?$`)

// parseAmount parses a positive money amount.
func parseAmount(input string) (decimal.Decimal, error) {
	amount, err := parseSignedAmount(input)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", models.ErrValidation)
	}
	return amount, nil
}

// parseSignedAmount parses a money amount that may be negative, such as
// a credit card balance.
func parseSignedAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")

	if !amountRegex.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", models.ErrValidation, input)
	}

	// A lone comma followed by one or two digits is a decimal comma.
	if i := strings.LastIndex(s, ","); i >= 0 && !strings.Contains(s, ".") && len(s)-i-1 <= 2 {
		s = s[:i] + "." + s[i+1:]
	}
	s = strings.ReplaceAll(s, ",", "")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", models.ErrValidation, input)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// parseDate accepts "today", "yesterday" or YYYY-MM-DD in now's location.
// An empty input means today. Today keeps the current time of day so the
// expense falls inside the current month window.
func parseDate(input string, now time.Time) (time.Time, error) {
	switch s := strings.ToLower(strings.TrimSpace(input)); s {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	default:
		t, err := time.ParseInLocation(dateLayout, s, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", models.ErrValidation, input)
		}
		return t, nil
	}
}

// endOfDay returns the last instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// parseCategory matches a category tag or display name, ignoring case.
func parseCategory(input string) (models.Category, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	for _, c := range models.Categories() {
		if s == string(c) || s == strings.ToLower(models.DisplayName(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", models.ErrValidation, input)
}

func parseCategories(inputs []string) ([]models.Category, error) {
	out := make([]models.Category, 0, len(inputs))
	for _, in := range inputs {
		c, err := parseCategory(in)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
