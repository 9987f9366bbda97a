package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

func usersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage the user directory",
	}
	cmd.AddCommand(usersAddCmd(app), usersListCmd(app))
	return cmd
}

func usersAddCmd(app *App) *cobra.Command {
	var id, name, email string
	var seed bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := &models.User{ID: id, Name: name, Email: email}
			if err := app.Users.Register(cmd.Context(), user); err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}
			if seed {
				if err := app.Ledger.EnsureInitialized(cmd.Context(), user.ID); err != nil {
					return fmt.Errorf("failed to initialize ledger: %w", err)
				}
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s) as %s\n", user.Name, user.Email, user.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().BoolVar(&seed, "seed", true, "seed sample data for the new user")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func usersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(users) == 0 {
				_, err := fmt.Fprintln(out, "No users registered. Use 'ledger users add' to create one.")
				return err
			}

			tw := newTable(out)
			defer flushTable(tw)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSINCE")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, models.FormatDate(u.CreatedAt))
			}
			return nil
		},
	}
}
