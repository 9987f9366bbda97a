package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

type budgetRecord struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Category string `json:"category"`
	Amount   amount `json:"amount"`
	Period   string `json:"period"`
}

// BudgetRepository reads and replaces a user's budget collection.
type BudgetRepository struct {
	c collection[models.Budget, budgetRecord]
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(backend store.Backend) *BudgetRepository {
	return &BudgetRepository{c: collection[models.Budget, budgetRecord]{
		backend:    backend,
		kind:       store.KindBudgets,
		toRecord:   budgetToRecord,
		fromRecord: budgetFromRecord,
	}}
}

// Load returns the user's budgets, or an empty slice if none were stored.
func (r *BudgetRepository) Load(ctx context.Context, userID string) ([]models.Budget, error) {
	return r.c.load(ctx, userID)
}

// Exists reports whether the user's budget collection was ever written.
func (r *BudgetRepository) Exists(ctx context.Context, userID string) (bool, error) {
	return r.c.exists(ctx, userID)
}

// Save replaces the user's whole budget collection.
func (r *BudgetRepository) Save(ctx context.Context, userID string, budgets []models.Budget) error {
	return r.c.save(ctx, userID, budgets)
}

func budgetToRecord(b models.Budget) budgetRecord {
	return budgetRecord{
		ID:       b.ID,
		UserID:   b.UserID,
		Category: string(b.Category),
		Amount:   amount(b.Amount),
		Period:   string(b.Period),
	}
}

func budgetFromRecord(userID string, rec budgetRecord) (models.Budget, string, error) {
	if err := checkOwner(userID, rec.ID, rec.UserID); err != nil {
		return models.Budget{}, rec.ID, err
	}
	b := models.Budget{
		ID:       rec.ID,
		UserID:   rec.UserID,
		Category: models.Category(rec.Category),
		Amount:   decimal.Decimal(rec.Amount),
		Period:   models.BudgetPeriod(rec.Period),
	}
	if err := b.Validate(); err != nil {
		return models.Budget{}, rec.ID, err
	}
	return b, rec.ID, nil
}
