// Package seed generates plausible starting data for a new user.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

const (
	// ExpenseCount is how many expenses Expenses generates.
	ExpenseCount = 45
	// WindowDays is how far back generated expense dates reach, today included.
	WindowDays = 30
	// RecurringShare is the probability that a generated expense recurs.
	RecurringShare = 0.3
)

// amountRange is a half-open range of whole dollars.
type amountRange struct{ min, max int64 }

var (
	defaultRange   = amountRange{10, 110}
	categoryRanges = map[models.Category]amountRange{
		models.CategoryHousing: {500, 1500},
		models.CategoryFood:    {10, 60},
		models.CategoryTravel:  {100, 600},
	}
	seedIntervals = []models.RecurringInterval{
		models.IntervalWeekly,
		models.IntervalMonthly,
		models.IntervalYearly,
	}
)

// Generator produces seed collections. The zero value is not usable; use New.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New returns a Generator drawing from rng and reading the time from now.
// A nil rng uses a randomly seeded source; a nil now uses time.Now.
func New(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Expenses returns ExpenseCount random expenses dated within the last
// WindowDays days.
func (g *Generator) Expenses(userID string) []models.Expense {
	now := g.now()
	categories := models.Categories()
	expenses := make([]models.Expense, 0, ExpenseCount)

	for i := range ExpenseCount {
		category := categories[g.rng.IntN(len(categories))]
		e := models.Expense{
			ID:          fmt.Sprintf("exp_%d_%d", i, now.UnixMilli()),
			UserID:      userID,
			Amount:      g.amount(category),
			Category:    category,
			Description: models.DisplayName(category) + " expense",
			Date:        now.AddDate(0, 0, -g.rng.IntN(WindowDays)),
		}
		if g.rng.Float64() < RecurringShare {
			e.IsRecurring = true
			e.RecurringInterval = seedIntervals[g.rng.IntN(len(seedIntervals))]
		}
		expenses = append(expenses, e)
	}

	return expenses
}

// amount draws a cents-precision value in the category's range.
func (g *Generator) amount(category models.Category) decimal.Decimal {
	r, ok := categoryRanges[category]
	if !ok {
		r = defaultRange
	}
	cents := r.min*100 + g.rng.Int64N((r.max-r.min)*100)
	return decimal.New(cents, -2)
}

// Budgets returns the fixed set of monthly starter budgets.
func (g *Generator) Budgets(userID string) []models.Budget {
	fixed := []struct {
		category models.Category
		amount   int64
	}{
		{models.CategoryFood, 500},
		{models.CategoryTransport, 200},
		{models.CategoryEntertainment, 300},
		{models.CategoryHousing, 1200},
		{models.CategoryUtilities, 250},
	}

	budgets := make([]models.Budget, 0, len(fixed))
	for i, f := range fixed {
		budgets = append(budgets, models.Budget{
			ID:       fmt.Sprintf("budget_%d", i+1),
			UserID:   userID,
			Category: f.category,
			Amount:   decimal.NewFromInt(f.amount),
			Period:   models.PeriodMonthly,
		})
	}
	return budgets
}

// Accounts returns the fixed set of starter accounts.
func (g *Generator) Accounts(userID string) []models.Account {
	fixed := []struct {
		name    string
		balance string
		typ     models.AccountType
	}{
		{"Checking Account", "4750.25", models.AccountBank},
		{"Savings Account", "12500.80", models.AccountBank},
		{"Credit Card", "-1250.45", models.AccountCredit},
		{"Investment Portfolio", "8750.32", models.AccountInvestment},
		{"Cash", "325.75", models.AccountCash},
	}

	accounts := make([]models.Account, 0, len(fixed))
	for i, f := range fixed {
		accounts = append(accounts, models.Account{
			ID:      fmt.Sprintf("acc_%d", i+1),
			UserID:  userID,
			Name:    f.name,
			Balance: decimal.RequireFromString(f.balance),
			Type:    f.typ,
		})
	}
	return accounts
}
