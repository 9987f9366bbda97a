package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.com/yelinaung/expense-ledger/internal/export"
	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

func summaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard"},
		Short:   "Show this month's spending at a glance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			s, err := app.Ledger.DashboardSummary(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Spent this month: %s\n", models.FormatCurrency(s.MonthTotal))
			if s.BudgetTotal.IsPositive() {
				fmt.Fprintf(out, "Budget used:      %d%% of %s\n", s.BudgetUsed, models.FormatCurrency(s.BudgetTotal))
			}
			fmt.Fprintf(out, "Net worth:        %s\n", models.FormatCurrency(s.NetWorth))

			fmt.Fprintln(out, "\nLast 7 days")
			tw := newTable(out)
			for _, d := range s.Week {
				fmt.Fprintf(tw, "  %s\t%s\n", d.Date.Format("Mon Jan 2"), models.FormatCurrency(d.Amount))
			}
			flushTable(tw)

			if len(s.Categories) > 0 {
				fmt.Fprintln(out, "\nBy category")
				tw = newTable(out)
				for _, c := range s.Categories {
					fmt.Fprintf(tw, "  %s\t%s\t%d%%\n", models.DisplayName(c.Category), models.FormatCurrency(c.Amount), c.Percentage)
				}
				flushTable(tw)
			}

			if len(s.TopBudgets) > 0 {
				fmt.Fprintln(out, "\nTop budgets")
				tw = newTable(out)
				for _, u := range s.TopBudgets {
					fmt.Fprintf(tw, "  %s\t%s / %s\t%s\n",
						models.DisplayName(u.Budget.Category), models.FormatCurrency(u.Spent), models.FormatCurrency(u.Budget.Amount), bar(u.Percentage))
				}
				flushTable(tw)
			}

			if len(s.Recent) > 0 {
				fmt.Fprintln(out, "\nRecent")
				tw = newTable(out)
				for _, e := range s.Recent {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", models.FormatDate(e.Date), e.Description, models.FormatCurrency(e.Amount))
				}
				flushTable(tw)
			}
			return nil
		},
	}
}

// bar renders a ten-cell progress bar for a 0-100 percentage.
func bar(percentage int) string {
	filled := min(max(percentage, 0), 100) / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + fmt.Sprintf("] %d%%", percentage)
}

func progressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show budget usage for the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			usage, err := app.Ledger.BudgetProgress(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to compute budget progress: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(usage) == 0 {
				_, err := fmt.Fprintln(out, "No budgets yet. Use 'ledger budgets add' to create one.")
				return err
			}

			tw := newTable(out)
			defer flushTable(tw)
			fmt.Fprintln(tw, "CATEGORY\tSPENT\tBUDGET\tREMAINING\tUSED")
			for _, u := range usage {
				remaining := models.FormatCurrency(u.Remaining)
				if u.Overspent() {
					remaining += " over"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					models.DisplayName(u.Budget.Category),
					models.FormatCurrency(u.Spent),
					models.FormatCurrency(u.Budget.Amount),
					remaining,
					bar(u.Percentage))
			}
			return nil
		},
	}
}

func recentCmd(app *App) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			expenses, err := app.Ledger.RecentActivity(cmd.Context(), userID, n)
			if err != nil {
				return fmt.Errorf("failed to load recent activity: %w", err)
			}

			tw := newTable(cmd.OutOrStdout())
			defer flushTable(tw)
			for _, e := range expenses {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					models.FormatDate(e.Date), models.DisplayName(e.Category), e.Description, models.FormatCurrency(e.Amount))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 5, "how many expenses to show")
	return cmd
}

func exportCmd(app *App) *cobra.Command {
	var (
		flags  expenseQueryFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses as CSV",
		Long: `Export expenses as CSV with the columns Date, Description, Category and Amount.

Without --output the CSV goes to stdout. Pass --output auto to write
expenses_<date>.csv in the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			q, err := flags.query(app)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				if output == "auto" {
					output = export.Filename(app.Now())
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() {
					if closeErr := f.Close(); closeErr != nil {
						logger.Log.Error().Err(closeErr).Str("file", output).Msg("Failed to close export file")
					}
				}()
				w = f
			}

			n, err := app.Ledger.ExportExpenses(cmd.Context(), userID, w, q)
			if err != nil {
				return fmt.Errorf("failed to export expenses: %w", err)
			}
			if output != "" {
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d expenses to %s\n", n, output)
			}
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, or auto")
	return cmd
}
