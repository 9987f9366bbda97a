package ledger

import (
	"context"
	"fmt"
	"slices"

	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

// ListAccounts returns the user's accounts in stored order.
func (s *Service) ListAccounts(ctx context.Context, userID string) (_ []models.Account, err error) {
	ctx, span := s.start(ctx, "list_accounts", userID)
	defer func() { s.finish(ctx, span, "list_accounts", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.accounts.Load(ctx, userID)
}

// CreateAccount appends an account.
func (s *Service) CreateAccount(ctx context.Context, userID string, draft models.Account) (_ models.Account, err error) {
	ctx, span := s.start(ctx, "create_account", userID)
	defer func() { s.finish(ctx, span, "create_account", true, err) }()

	if err := requireUser(userID); err != nil {
		return models.Account{}, err
	}
	draft.UserID = userID
	if draft.ID == "" {
		draft.ID = s.newID("acc")
	}
	if err := draft.Validate(); err != nil {
		return models.Account{}, err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindAccounts})
	defer unlock()

	accounts, err := s.accounts.Load(ctx, userID)
	if err != nil {
		return models.Account{}, err
	}
	if indexOfAccount(accounts, draft.ID) >= 0 {
		return models.Account{}, fmt.Errorf("%w: account id %q already exists", models.ErrValidation, draft.ID)
	}

	if err := s.accounts.Save(ctx, userID, append(accounts, draft)); err != nil {
		return models.Account{}, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("account_id", draft.ID).
		Str("type", string(draft.Type)).
		Msg("Account created")

	return draft, nil
}

// UpdateAccount replaces the stored account with the same id.
func (s *Service) UpdateAccount(ctx context.Context, userID string, account models.Account) (_ models.Account, err error) {
	ctx, span := s.start(ctx, "update_account", userID)
	defer func() { s.finish(ctx, span, "update_account", true, err) }()

	if err := requireUser(userID); err != nil {
		return models.Account{}, err
	}
	if account.ID == "" {
		return models.Account{}, fmt.Errorf("%w: account id is required", models.ErrValidation)
	}
	account.UserID = userID
	if err := account.Validate(); err != nil {
		return models.Account{}, err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindAccounts})
	defer unlock()

	accounts, err := s.accounts.Load(ctx, userID)
	if err != nil {
		return models.Account{}, err
	}
	idx := indexOfAccount(accounts, account.ID)
	if idx < 0 {
		return models.Account{}, fmt.Errorf("%w: account %q", models.ErrNotFound, account.ID)
	}
	accounts[idx] = account

	if err := s.accounts.Save(ctx, userID, accounts); err != nil {
		return models.Account{}, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("account_id", account.ID).
		Msg("Account updated")

	return account, nil
}

// DeleteAccount removes the account with id. Unknown ids are a no-op.
func (s *Service) DeleteAccount(ctx context.Context, userID, id string) (err error) {
	ctx, span := s.start(ctx, "delete_account", userID)
	defer func() { s.finish(ctx, span, "delete_account", true, err) }()

	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindAccounts})
	defer unlock()

	accounts, err := s.accounts.Load(ctx, userID)
	if err != nil {
		return err
	}
	idx := indexOfAccount(accounts, id)
	if idx < 0 {
		return nil
	}

	if err := s.accounts.Save(ctx, userID, slices.Delete(accounts, idx, idx+1)); err != nil {
		return err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("account_id", id).
		Msg("Account deleted")
	return nil
}

func indexOfAccount(accounts []models.Account, id string) int {
	return slices.IndexFunc(accounts, func(a models.Account) bool { return a.ID == id })
}
