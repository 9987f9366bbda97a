package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

type accountRecord struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Balance amount `json:"balance"`
	Type    string `json:"type"`
}

// AccountRepository reads and replaces a user's account collection.
type AccountRepository struct {
	c collection[models.Account, accountRecord]
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(backend store.Backend) *AccountRepository {
	return &AccountRepository{c: collection[models.Account, accountRecord]{
		backend:    backend,
		kind:       store.KindAccounts,
		toRecord:   accountToRecord,
		fromRecord: accountFromRecord,
	}}
}

// Load returns the user's accounts, or an empty slice if none were stored.
func (r *AccountRepository) Load(ctx context.Context, userID string) ([]models.Account, error) {
	return r.c.load(ctx, userID)
}

// Exists reports whether the user's account collection was ever written.
func (r *AccountRepository) Exists(ctx context.Context, userID string) (bool, error) {
	return r.c.exists(ctx, userID)
}

// Save replaces the user's whole account collection.
func (r *AccountRepository) Save(ctx context.Context, userID string, accounts []models.Account) error {
	return r.c.save(ctx, userID, accounts)
}

func accountToRecord(a models.Account) accountRecord {
	return accountRecord{
		ID:      a.ID,
		UserID:  a.UserID,
		Name:    a.Name,
		Balance: amount(a.Balance),
		Type:    string(a.Type),
	}
}

func accountFromRecord(userID string, rec accountRecord) (models.Account, string, error) {
	if err := checkOwner(userID, rec.ID, rec.UserID); err != nil {
		return models.Account{}, rec.ID, err
	}
	a := models.Account{
		ID:      rec.ID,
		UserID:  rec.UserID,
		Name:    rec.Name,
		Balance: decimal.Decimal(rec.Balance),
		Type:    models.AccountType(rec.Type),
	}
	if err := a.Validate(); err != nil {
		return models.Account{}, rec.ID, err
	}
	return a, rec.ID, nil
}
