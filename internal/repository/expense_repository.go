package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

type expenseRecord struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Amount            amount    `json:"amount"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	Date              time.Time `json:"date"`
	IsRecurring       bool      `json:"isRecurring"`
	RecurringInterval string    `json:"recurringInterval,omitempty"`
}

// ExpenseRepository reads and replaces a user's expense collection.
type ExpenseRepository struct {
	c collection[models.Expense, expenseRecord]
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(backend store.Backend) *ExpenseRepository {
	return &ExpenseRepository{c: collection[models.Expense, expenseRecord]{
		backend:    backend,
		kind:       store.KindExpenses,
		toRecord:   expenseToRecord,
		fromRecord: expenseFromRecord,
	}}
}

// Load returns the user's expenses in stored order, or an empty slice if
// the collection was never written.
func (r *ExpenseRepository) Load(ctx context.Context, userID string) ([]models.Expense, error) {
	return r.c.load(ctx, userID)
}

// Exists reports whether the user's expense collection was ever written.
func (r *ExpenseRepository) Exists(ctx context.Context, userID string) (bool, error) {
	return r.c.exists(ctx, userID)
}

// Save replaces the user's whole expense collection.
func (r *ExpenseRepository) Save(ctx context.Context, userID string, expenses []models.Expense) error {
	return r.c.save(ctx, userID, expenses)
}

func expenseToRecord(e models.Expense) expenseRecord {
	rec := expenseRecord{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      amount(e.Amount),
		Category:    string(e.Category),
		Description: e.Description,
		Date:        e.Date.UTC(),
		IsRecurring: e.IsRecurring,
	}
	if e.IsRecurring {
		rec.RecurringInterval = string(e.RecurringInterval)
	}
	return rec
}

func expenseFromRecord(userID string, rec expenseRecord) (models.Expense, string, error) {
	if err := checkOwner(userID, rec.ID, rec.UserID); err != nil {
		return models.Expense{}, rec.ID, err
	}
	e := models.Expense{
		ID:                rec.ID,
		UserID:            rec.UserID,
		Amount:            decimal.Decimal(rec.Amount),
		Category:          models.Category(rec.Category),
		Description:       rec.Description,
		Date:              rec.Date,
		IsRecurring:       rec.IsRecurring,
		RecurringInterval: models.RecurringInterval(rec.RecurringInterval),
	}
	if err := e.Validate(); err != nil {
		return models.Expense{}, rec.ID, err
	}
	return e, rec.ID, nil
}
