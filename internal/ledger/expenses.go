package ledger

import (
	"context"
	"fmt"
	"slices"

	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

// ListExpenses returns the user's expenses in stored order, newest
// created first.
func (s *Service) ListExpenses(ctx context.Context, userID string) (_ []models.Expense, err error) {
	ctx, span := s.start(ctx, "list_expenses", userID)
	defer func() { s.finish(ctx, span, "list_expenses", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.expenses.Load(ctx, userID)
}

// CreateExpense validates draft, assigns an id if it has none, and adds it
// to the front of the user's expenses.
func (s *Service) CreateExpense(ctx context.Context, userID string, draft models.Expense) (_ models.Expense, err error) {
	ctx, span := s.start(ctx, "create_expense", userID)
	defer func() { s.finish(ctx, span, "create_expense", true, err) }()

	if err := requireUser(userID); err != nil {
		return models.Expense{}, err
	}
	draft.UserID = userID
	if draft.ID == "" {
		draft.ID = s.newID("exp")
	}
	if err := draft.Validate(); err != nil {
		return models.Expense{}, err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindExpenses})
	defer unlock()

	expenses, err := s.expenses.Load(ctx, userID)
	if err != nil {
		return models.Expense{}, err
	}
	if indexOfExpense(expenses, draft.ID) >= 0 {
		return models.Expense{}, fmt.Errorf("%w: expense id %q already exists", models.ErrValidation, draft.ID)
	}

	if err := s.expenses.Save(ctx, userID, slices.Insert(expenses, 0, draft)); err != nil {
		return models.Expense{}, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("expense_id", draft.ID).
		Str("category", string(draft.Category)).
		Str("amount", draft.Amount.String()).
		Msg("Expense created")
	logger.Log.Debug().
		Str("expense_id", draft.ID).
		Str("description", logger.SanitizeDescription(draft.Description)).
		Msg("Expense description")

	return draft, nil
}

// UpdateExpense replaces the stored expense with the same id.
func (s *Service) UpdateExpense(ctx context.Context, userID string, expense models.Expense) (_ models.Expense, err error) {
	ctx, span := s.start(ctx, "update_expense", userID)
	defer func() { s.finish(ctx, span, "update_expense", true, err) }()

	if err := requireUser(userID); err != nil {
		return models.Expense{}, err
	}
	if expense.ID == "" {
		return models.Expense{}, fmt.Errorf("%w: expense id is required", models.ErrValidation)
	}
	expense.UserID = userID
	if err := expense.Validate(); err != nil {
		return models.Expense{}, err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindExpenses})
	defer unlock()

	expenses, err := s.expenses.Load(ctx, userID)
	if err != nil {
		return models.Expense{}, err
	}
	idx := indexOfExpense(expenses, expense.ID)
	if idx < 0 {
		return models.Expense{}, fmt.Errorf("%w: expense %q", models.ErrNotFound, expense.ID)
	}
	expenses[idx] = expense

	if err := s.expenses.Save(ctx, userID, expenses); err != nil {
		return models.Expense{}, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("expense_id", expense.ID).
		Msg("Expense updated")

	return expense, nil
}

// DeleteExpense removes the expense with id. Deleting an unknown id
// succeeds without writing.
func (s *Service) DeleteExpense(ctx context.Context, userID, id string) (err error) {
	ctx, span := s.start(ctx, "delete_expense", userID)
	defer func() { s.finish(ctx, span, "delete_expense", true, err) }()

	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindExpenses})
	defer unlock()

	expenses, err := s.expenses.Load(ctx, userID)
	if err != nil {
		return err
	}
	idx := indexOfExpense(expenses, id)
	if idx < 0 {
		logger.Log.Debug().
			Str("user", logger.HashUserID(userID)).
			Str("expense_id", id).
			Msg("Expense already absent")
		return nil
	}

	if err := s.expenses.Save(ctx, userID, slices.Delete(expenses, idx, idx+1)); err != nil {
		return err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("expense_id", id).
		Msg("Expense deleted")
	return nil
}

func indexOfExpense(expenses []models.Expense, id string) int {
	return slices.IndexFunc(expenses, func(e models.Expense) bool { return e.ID == id })
}
