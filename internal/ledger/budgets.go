package ledger

import (
	"context"
	"fmt"
	"slices"

	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

// ListBudgets returns the user's budgets in stored order.
func (s *Service) ListBudgets(ctx context.Context, userID string) (_ []models.Budget, err error) {
	ctx, span := s.start(ctx, "list_budgets", userID)
	defer func() { s.finish(ctx, span, "list_budgets", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.budgets.Load(ctx, userID)
}

// CreateBudget appends a budget. A user has at most one budget per category.
func (s *Service) CreateBudget(ctx context.Context, userID string, draft models.Budget) (_ models.Budget, err error) {
	ctx, span := s.start(ctx, "create_budget", userID)
	defer func() { s.finish(ctx, span, "create_budget", true, err) }()

	if err := requireUser(userID); err != nil {
		return models.Budget{}, err
	}
	draft.UserID = userID
	if draft.ID == "" {
		draft.ID = s.newID("budget")
	}
	if err := draft.Validate(); err != nil {
		return models.Budget{}, err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindBudgets})
	defer unlock()

	budgets, err := s.budgets.Load(ctx, userID)
	if err != nil {
		return models.Budget{}, err
	}
	for _, b := range budgets {
		if b.Category == draft.Category {
			return models.Budget{}, fmt.Errorf("%w: %s", models.ErrDuplicateCategory, models.DisplayName(draft.Category))
		}
		if b.ID == draft.ID {
			return models.Budget{}, fmt.Errorf("%w: budget id %q already exists", models.ErrValidation, draft.ID)
		}
	}

	if err := s.budgets.Save(ctx, userID, append(budgets, draft)); err != nil {
		return models.Budget{}, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("budget_id", draft.ID).
		Str("category", string(draft.Category)).
		Str("amount", draft.Amount.String()).
		Msg("Budget created")

	return draft, nil
}

// UpdateBudget changes a budget's amount or period. The category of an
// existing budget cannot change.
func (s *Service) UpdateBudget(ctx context.Context, userID string, budget models.Budget) (_ models.Budget, err error) {
	ctx, span := s.start(ctx, "update_budget", userID)
	defer func() { s.finish(ctx, span, "update_budget", true, err) }()

	if err := requireUser(userID); err != nil {
		return models.Budget{}, err
	}
	if budget.ID == "" {
		return models.Budget{}, fmt.Errorf("%w: budget id is required", models.ErrValidation)
	}
	budget.UserID = userID
	if err := budget.Validate(); err != nil {
		return models.Budget{}, err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindBudgets})
	defer unlock()

	budgets, err := s.budgets.Load(ctx, userID)
	if err != nil {
		return models.Budget{}, err
	}
	idx := slices.IndexFunc(budgets, func(b models.Budget) bool { return b.ID == budget.ID })
	if idx < 0 {
		return models.Budget{}, fmt.Errorf("%w: budget %q", models.ErrNotFound, budget.ID)
	}
	if budgets[idx].Category != budget.Category {
		return models.Budget{}, fmt.Errorf("%w: budget category is %s", models.ErrImmutableField, budgets[idx].Category)
	}
	budgets[idx] = budget

	if err := s.budgets.Save(ctx, userID, budgets); err != nil {
		return models.Budget{}, err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("budget_id", budget.ID).
		Str("amount", budget.Amount.String()).
		Str("period", string(budget.Period)).
		Msg("Budget updated")

	return budget, nil
}

// DeleteBudget removes the budget with id. Unknown ids are a no-op.
func (s *Service) DeleteBudget(ctx context.Context, userID, id string) (err error) {
	ctx, span := s.start(ctx, "delete_budget", userID)
	defer func() { s.finish(ctx, span, "delete_budget", true, err) }()

	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.locks.lock(store.Key{UserID: userID, Kind: store.KindBudgets})
	defer unlock()

	budgets, err := s.budgets.Load(ctx, userID)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(budgets, func(b models.Budget) bool { return b.ID == id })
	if idx < 0 {
		return nil
	}

	if err := s.budgets.Save(ctx, userID, slices.Delete(budgets, idx, idx+1)); err != nil {
		return err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Str("budget_id", id).
		Msg("Budget deleted")
	return nil
}

// AvailableBudgetCategories lists categories that have no budget yet, in
// category table order.
func (s *Service) AvailableBudgetCategories(ctx context.Context, userID string) (_ []models.Category, err error) {
	ctx, span := s.start(ctx, "available_budget_categories", userID)
	defer func() { s.finish(ctx, span, "available_budget_categories", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	budgets, err := s.budgets.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	taken := make(map[models.Category]bool, len(budgets))
	for _, b := range budgets {
		taken[b.Category] = true
	}
	var available []models.Category
	for _, c := range models.Categories() {
		if !taken[c] {
			available = append(available, c)
		}
	}
	return available, nil
}
