package ledger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"gitlab.com/yelinaung/expense-ledger/internal/aggregate"
	"gitlab.com/yelinaung/expense-ledger/internal/export"
	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

const (
	dashboardDays       = 7
	dashboardTopBudgets = 3
	dashboardRecent     = 5
)

// BudgetProgress reports each budget's usage for the current month, from
// the first of the month through now.
func (s *Service) BudgetProgress(ctx context.Context, userID string) (_ []aggregate.Usage, err error) {
	ctx, span := s.start(ctx, "budget_progress", userID)
	defer func() { s.finish(ctx, span, "budget_progress", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		expenses []models.Expense
		budgets  []models.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.expenses.Load(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = s.budgets.Load(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	return aggregate.BudgetUsage(aggregate.FilterByDateRange(expenses, aggregate.MonthStart(now), now), budgets)
}

// Summary is the dashboard view of one user's ledger.
type Summary struct {
	// MonthTotal is spending from the first of the month through now.
	MonthTotal decimal.Decimal
	// BudgetTotal is the sum of all budget amounts.
	BudgetTotal decimal.Decimal
	// BudgetUsed is MonthTotal as a whole percent of BudgetTotal, 0 without
	// budgets. It is not capped.
	BudgetUsed int
	NetWorth   decimal.Decimal
	// Week is the trailing seven days of spending, oldest first.
	Week       []aggregate.DayTotal
	Categories []aggregate.CategoryShare
	TopBudgets []aggregate.Usage
	Recent     []models.Expense
}

// DashboardSummary loads the user's collections concurrently and derives
// the dashboard figures.
func (s *Service) DashboardSummary(ctx context.Context, userID string) (_ *Summary, err error) {
	ctx, span := s.start(ctx, "dashboard_summary", userID)
	defer func() { s.finish(ctx, span, "dashboard_summary", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		expenses []models.Expense
		budgets  []models.Budget
		accounts []models.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.expenses.Load(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = s.budgets.Load(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		accounts, err = s.accounts.Load(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	month := aggregate.FilterByDateRange(expenses, aggregate.MonthStart(now), now)

	usage, err := aggregate.BudgetUsage(month, budgets)
	if err != nil {
		return nil, err
	}

	budgetTotal := decimal.Zero
	for _, b := range budgets {
		budgetTotal = budgetTotal.Add(b.Amount)
	}
	monthTotal := aggregate.TotalAmount(month)

	summary := &Summary{
		MonthTotal:  monthTotal,
		BudgetTotal: budgetTotal,
		BudgetUsed:  aggregate.Percent(monthTotal, budgetTotal),
		NetWorth:    aggregate.NetWorth(accounts),
		Week:        aggregate.DailySeries(expenses, dashboardDays, now),
		Categories:  aggregate.CategoryBreakdown(month),
		TopBudgets:  aggregate.TopBudgets(usage, dashboardTopBudgets),
		Recent:      aggregate.Recent(expenses, dashboardRecent),
	}

	logger.Log.Debug().
		Str("user", logger.HashUserID(userID)).
		Int("expenses", len(expenses)).
		Int("month_expenses", len(month)).
		Int("budgets", len(budgets)).
		Int("accounts", len(accounts)).
		Msg("Dashboard summary computed")

	return summary, nil
}

// RecentActivity returns up to n of the user's expenses, newest first.
func (s *Service) RecentActivity(ctx context.Context, userID string, n int) (_ []models.Expense, err error) {
	ctx, span := s.start(ctx, "recent_activity", userID)
	defer func() { s.finish(ctx, span, "recent_activity", false, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregate.Recent(expenses, n), nil
}

// ExpenseQuery selects and orders expenses.
type ExpenseQuery struct {
	// Categories restricts the result; empty means all categories.
	Categories []models.Category
	// From and To bound expense dates inclusively; a zero value leaves
	// that side open.
	From, To time.Time
	// Sort and Direction default to newest first.
	Sort      aggregate.SortField
	Direction aggregate.SortDirection
}

// QueryExpenses returns the user's expenses matching q in q's order.
func (s *Service) QueryExpenses(ctx context.Context, userID string, q ExpenseQuery) (_ []models.Expense, err error) {
	ctx, span := s.start(ctx, "query_expenses", userID)
	defer func() { s.finish(ctx, span, "query_expenses", false, err) }()

	return s.queryExpenses(ctx, userID, q)
}

func (s *Service) queryExpenses(ctx context.Context, userID string, q ExpenseQuery) ([]models.Expense, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	field, direction, err := aggregate.ParseSort(string(q.Sort), string(q.Direction))
	if err != nil {
		return nil, err
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return nil, fmt.Errorf("%w: date range starts after it ends", models.ErrValidation)
	}
	for _, c := range q.Categories {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", models.ErrValidation, c)
		}
	}

	expenses, err := s.expenses.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := aggregate.FilterByCategory(expenses, q.Categories)
	if !q.From.IsZero() || !q.To.IsZero() {
		to := q.To
		if to.IsZero() {
			to = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		}
		selected = aggregate.FilterByDateRange(selected, q.From, to)
	}
	return aggregate.SortExpenses(selected, field, direction), nil
}

// ExportExpenses writes the user's expenses matching q to w as CSV and
// returns the number of rows written.
func (s *Service) ExportExpenses(ctx context.Context, userID string, w io.Writer, q ExpenseQuery) (_ int, err error) {
	ctx, span := s.start(ctx, "export_expenses", userID)
	defer func() { s.finish(ctx, span, "export_expenses", false, err) }()

	selected, err := s.queryExpenses(ctx, userID, q)
	if err != nil {
		return 0, err
	}

	if err := export.ExpensesCSV(w, selected); err != nil {
		return 0, fmt.Errorf("failed to export expenses: %w", err)
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(userID)).
		Int("rows", len(selected)).
		Msg("Expenses exported")

	return len(selected), nil
}
