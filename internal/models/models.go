// Package models defines the domain entities for the expense ledger.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecurringInterval is how often a recurring expense repeats.
type RecurringInterval string

// Recurring intervals.
const (
	IntervalDaily   RecurringInterval = "daily"
	IntervalWeekly  RecurringInterval = "weekly"
	IntervalMonthly RecurringInterval = "monthly"
	IntervalYearly  RecurringInterval = "yearly"
)

// Valid reports whether i is a known interval.
func (i RecurringInterval) Valid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

// BudgetPeriod is the window a budget limit applies to.
type BudgetPeriod string

// Budget periods.
const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// AccountType classifies an account.
type AccountType string

// Account types.
const (
	AccountCash       AccountType = "cash"
	AccountBank       AccountType = "bank"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountBank, AccountCredit, AccountInvestment, AccountOther:
		return true
	}
	return false
}

// User owns every other entity through its ID.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Expense is a single recorded transaction.
type Expense struct {
	ID                string
	UserID            string
	Amount            decimal.Decimal
	Category          Category
	Description       string
	Date              time.Time
	IsRecurring       bool
	RecurringInterval RecurringInterval // empty unless IsRecurring
}

// Validate checks the expense invariants. The user and ID are not checked
// here because the ledger assigns them.
func (e *Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, e.Category)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if e.IsRecurring && !e.RecurringInterval.Valid() {
		return fmt.Errorf("%w: recurring expense needs a valid interval, got %q", ErrValidation, e.RecurringInterval)
	}
	if !e.IsRecurring && e.RecurringInterval != "" {
		return fmt.Errorf("%w: interval %q set on a non-recurring expense", ErrValidation, e.RecurringInterval)
	}
	return nil
}

// Budget is a spending limit for one category.
type Budget struct {
	ID       string
	UserID   string
	Category Category
	Amount   decimal.Decimal
	Period   BudgetPeriod
}

// Validate checks the budget invariants.
func (b *Budget) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, b.Category)
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: budget amount must be greater than zero", ErrValidation)
	}
	if !b.Period.Valid() {
		return fmt.Errorf("%w: unknown budget period %q", ErrValidation, b.Period)
	}
	return nil
}

// Account holds a balance. Credit accounts usually carry a negative one.
type Account struct {
	ID      string
	UserID  string
	Name    string
	Balance decimal.Decimal
	Type    AccountType
}

// Validate checks the account invariants.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", ErrValidation, a.Type)
	}
	return nil
}
