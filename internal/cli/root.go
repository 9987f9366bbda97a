// Package cli implements the expense-ledger command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/yelinaung/expense-ledger/internal/ledger"
	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/repository"
)

// App holds what the commands need.
type App struct {
	Ledger *ledger.Service
	Users  *repository.UserRepository
	// DefaultUser is used when --user is not given.
	DefaultUser string
	Version     string
	Now         func() time.Time

	userID string
}

// NewRootCmd builds the command tree for app.
func NewRootCmd(app *App) *cobra.Command {
	if app.Now == nil {
		app.Now = time.Now
	}

	root := &cobra.Command{
		Use:           "ledger",
		Short:         "Personal expense ledger",
		Long:          "Track expenses, budgets and account balances, and see where the money went.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.userID, "user", "u", "", "user id (default $LEDGER_USER)")

	root.AddCommand(
		initCmd(app),
		expensesCmd(app),
		budgetsCmd(app),
		accountsCmd(app),
		summaryCmd(app),
		progressCmd(app),
		recentCmd(app),
		exportCmd(app),
		usersCmd(app),
		versionCmd(app),
	)
	return root
}

// user resolves the acting user from --user or the configured default.
func (a *App) user() (string, error) {
	if a.userID != "" {
		return a.userID, nil
	}
	if a.DefaultUser != "" {
		return a.DefaultUser, nil
	}
	return "", errors.New("no user selected: pass --user or set LEDGER_USER")
}

func initCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed sample data for a new user",
		Long: `Create starter expenses, budgets and accounts for the user.

Collections that already exist are left untouched, so running init again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.user()
			if err != nil {
				return err
			}
			if err := app.Ledger.EnsureInitialized(cmd.Context(), userID); err != nil {
				return fmt.Errorf("failed to initialize ledger: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Ledger ready for %s\n", userID)
			return err
		},
	}
}

func versionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "expense-ledger %s\n", app.Version)
			return err
		},
	}
}

// newTable returns a tabwriter over w. Callers must Flush it.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func flushTable(tw *tabwriter.Writer) {
	if err := tw.Flush(); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to flush table writer")
	}
}
