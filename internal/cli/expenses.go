package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/yelinaung/expense-ledger/internal/aggregate"
	"gitlab.com/yelinaung/expense-ledger/internal/ledger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

func expensesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "exp"},
		Short:   "List and manage expenses",
	}
	cmd.AddCommand(
		expensesListCmd(app),
		expensesAddCmd(app),
		expensesEditCmd(app),
		expensesDeleteCmd(app),
	)
	return cmd
}

type expenseQueryFlags struct {
	categories []string
	from, to   string
	sort, dir  string
}

func (f *expenseQueryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "only these categories (repeatable)")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.sort, "sort", "date", "sort by date or amount")
	cmd.Flags().StringVar(&f.dir, "dir", "desc", "sort direction, asc or desc")
}

// query converts the flags into a ledger query.
func (f *expenseQueryFlags) query(app *App) (q ledger.ExpenseQuery, err error) {
	if q.Categories, err = parseCategories(f.categories); err != nil {
		return q, err
	}
	now := app.Now()
	if f.from != "" {
		if q.From, err = parseDate(f.from, now); err != nil {
			return q, err
		}
	}
	if f.to != "" {
		to, err := parseDate(f.to, now)
		if err != nil {
			return q, err
		}
		q.To = endOfDay(to)
	}
	if q.Sort, q.Direction, err = aggregate.ParseSort(f.sort, f.dir); err != nil {
		return q, err
	}
	return q, nil
}

func expensesListCmd(app *App) *cobra.Command {
	var (
		flags expenseQueryFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			q, err := flags.query(app)
			if err != nil {
				return err
			}

			expenses, err := app.Ledger.QueryExpenses(cmd.Context(), userID, q)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			if limit > 0 && len(expenses) > limit {
				expenses = expenses[:limit]
			}

			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				_, err := fmt.Fprintln(out, "No expenses found. Use 'ledger expenses add' to record one.")
				return err
			}

			tw := newTable(out)
			defer flushTable(tw)
			fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
			for _, e := range expenses {
				desc := e.Description
				if e.IsRecurring {
					desc += " (" + string(e.RecurringInterval) + ")"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, models.FormatDate(e.Date), models.DisplayName(e.Category), models.FormatCurrency(e.Amount), desc)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n expenses")
	return cmd
}

func expensesAddCmd(app *App) *cobra.Command {
	var amount, category, description, date, recurring string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Example: `  ledger expenses add --amount 12.50 --category food --description "Lunch"
  ledger expenses add -a 1200 -c housing -d Rent --recurring monthly --date 2026-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}

			draft := models.Expense{Description: description}
			if draft.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if draft.Category, err = parseCategory(category); err != nil {
				return err
			}
			if draft.Date, err = parseDate(date, app.Now()); err != nil {
				return err
			}
			if recurring != "" {
				draft.IsRecurring = true
				draft.RecurringInterval = models.RecurringInterval(recurring)
			}

			created, err := app.Ledger.CreateExpense(cmd.Context(), userID, draft)
			if err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s for %s (%s)\n",
				created.ID, models.FormatCurrency(created.Amount), created.Description, models.DisplayName(created.Category))
			return err
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, e.g. 12.50")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category tag or name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what it was for")
	cmd.Flags().StringVar(&date, "date", "", "YYYY-MM-DD, today or yesterday (default today)")
	cmd.Flags().StringVar(&recurring, "recurring", "", "repeat interval: daily, weekly, monthly or yearly")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func expensesEditCmd(app *App) *cobra.Command {
	var amount, category, description, date, recurring string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an expense",
		Long:  "Change an expense. Only the flags given are updated; pass --recurring none to make it one-off.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}

			expenses, err := app.Ledger.ListExpenses(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}
			var current *models.Expense
			for i := range expenses {
				if expenses[i].ID == args[0] {
					current = &expenses[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("%w: expense %q", models.ErrNotFound, args[0])
			}

			flags := cmd.Flags()
			if flags.Changed("amount") {
				if current.Amount, err = parseAmount(amount); err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				if current.Category, err = parseCategory(category); err != nil {
					return err
				}
			}
			if flags.Changed("description") {
				current.Description = description
			}
			if flags.Changed("date") {
				if current.Date, err = parseDate(date, app.Now()); err != nil {
					return err
				}
			}
			if flags.Changed("recurring") {
				if recurring == "none" || recurring == "" {
					current.IsRecurring = false
					current.RecurringInterval = ""
				} else {
					current.IsRecurring = true
					current.RecurringInterval = models.RecurringInterval(recurring)
				}
			}

			updated, err := app.Ledger.UpdateExpense(cmd.Context(), userID, *current)
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s for %s\n",
				updated.ID, models.FormatCurrency(updated.Amount), updated.Description)
			return err
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&date, "date", "", "new date, YYYY-MM-DD")
	cmd.Flags().StringVar(&recurring, "recurring", "", "daily, weekly, monthly, yearly or none")
	return cmd
}

func expensesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			if err := app.Ledger.DeleteExpense(cmd.Context(), userID, args[0]); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}
