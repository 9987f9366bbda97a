package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/yelinaung/expense-ledger/internal/aggregate"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

func accountsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "List and manage accounts",
	}
	cmd.AddCommand(
		accountsListCmd(app),
		accountsAddCmd(app),
		accountsDeleteCmd(app),
	)
	return cmd
}

func accountsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and net worth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			accounts, err := app.Ledger.ListAccounts(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(accounts) == 0 {
				_, err := fmt.Fprintln(out, "No accounts yet. Use 'ledger accounts add' to create one.")
				return err
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBALANCE")
			for _, a := range accounts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, models.FormatCurrency(a.Balance))
			}
			flushTable(tw)

			_, err = fmt.Fprintf(out, "\nNet worth: %s\n", models.FormatCurrency(aggregate.NetWorth(accounts)))
			return err
		},
	}
}

func accountsAddCmd(app *App) *cobra.Command {
	var name, balance, accountType string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an account",
		Example: `  ledger accounts add --name "Credit Card" --type credit --balance -1250.45`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}

			draft := models.Account{Name: name, Type: models.AccountType(accountType)}
			if draft.Balance, err = parseSignedAmount(balance); err != nil {
				return err
			}

			created, err := app.Ledger.CreateAccount(cmd.Context(), userID, draft)
			if err != nil {
				return fmt.Errorf("failed to add account: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (%s) %s\n",
				created.ID, created.Name, created.Type, models.FormatCurrency(created.Balance))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "account name")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance, negative for debt")
	cmd.Flags().StringVarP(&accountType, "type", "t", string(models.AccountBank), "cash, bank, credit, investment or other")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func accountsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			if err := app.Ledger.DeleteAccount(cmd.Context(), userID, args[0]); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}
