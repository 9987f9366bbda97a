package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

func budgetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "List and manage category budgets",
	}
	cmd.AddCommand(
		budgetsListCmd(app),
		budgetsAddCmd(app),
		budgetsEditCmd(app),
		budgetsDeleteCmd(app),
	)
	return cmd
}

func budgetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			budgets, err := app.Ledger.ListBudgets(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				_, err := fmt.Fprintln(out, "No budgets yet. Use 'ledger budgets add' to create one.")
				return err
			}

			tw := newTable(out)
			defer flushTable(tw)
			fmt.Fprintln(tw, "ID\tCATEGORY\tAMOUNT\tPERIOD")
			for _, b := range budgets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, models.DisplayName(b.Category), models.FormatCurrency(b.Amount), b.Period)
			}
			return nil
		},
	}
}

func budgetsAddCmd(app *App) *cobra.Command {
	var category, amount, period string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a budget for a category",
		Example: `  ledger budgets add --category food --amount 500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}

			draft := models.Budget{Period: models.BudgetPeriod(period)}
			if draft.Category, err = parseCategory(category); err != nil {
				return err
			}
			if draft.Amount, err = parseAmount(amount); err != nil {
				return err
			}

			created, err := app.Ledger.CreateBudget(cmd.Context(), userID, draft)
			if err != nil {
				return fmt.Errorf("failed to add budget: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s for %s\n",
				created.ID, models.FormatCurrency(created.Amount), created.Period, models.DisplayName(created.Category))
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category tag or name")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "spending limit")
	cmd.Flags().StringVarP(&period, "period", "p", string(models.PeriodMonthly), "weekly, monthly or yearly")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func budgetsEditCmd(app *App) *cobra.Command {
	var category, amount, period string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a budget's amount or period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}

			budgets, err := app.Ledger.ListBudgets(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to load budgets: %w", err)
			}
			var current *models.Budget
			for i := range budgets {
				if budgets[i].ID == args[0] {
					current = &budgets[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("%w: budget %q", models.ErrNotFound, args[0])
			}

			flags := cmd.Flags()
			if flags.Changed("amount") {
				if current.Amount, err = parseAmount(amount); err != nil {
					return err
				}
			}
			if flags.Changed("period") {
				current.Period = models.BudgetPeriod(period)
			}
			if flags.Changed("category") {
				// Passed through so the ledger can refuse the change.
				if current.Category, err = parseCategory(category); err != nil {
					return err
				}
			}

			updated, err := app.Ledger.UpdateBudget(cmd.Context(), userID, *current)
			if err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s %s\n",
				updated.ID, models.FormatCurrency(updated.Amount), updated.Period)
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (cannot be changed)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new spending limit")
	cmd.Flags().StringVarP(&period, "period", "p", "", "weekly, monthly or yearly")
	return cmd
}

func budgetsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			if err := app.Ledger.DeleteBudget(cmd.Context(), userID, args[0]); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}
