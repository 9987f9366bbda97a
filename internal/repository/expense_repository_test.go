package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/expense-ledger/internal/database"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

func sampleExpenses(userID string) []models.Expense {
	return []models.Expense{
		{
			ID:          "exp_1",
			UserID:      userID,
			Amount:      decimal.RequireFromString("25.50"),
			Category:    models.CategoryFood,
			Description: "Lunch",
			Date:        time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:                "exp_2",
			UserID:            userID,
			Amount:            decimal.NewFromInt(1200),
			Category:          models.CategoryHousing,
			Description:       "Rent",
			Date:              time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring:       true,
			RecurringInterval: models.IntervalMonthly,
		},
	}
}

func requireSameExpenses(t *testing.T, want, got []models.Expense) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].Amount.Equal(got[i].Amount), "amount of %s", want[i].ID)
		require.True(t, want[i].Date.Equal(got[i].Date), "date of %s", want[i].ID)
		w, g := want[i], got[i]
		w.Amount, g.Amount = decimal.Zero, decimal.Zero
		w.Date, g.Date = time.Time{}, time.Time{}
		require.Equal(t, w, g)
	}
}

func TestExpenseRepository(t *testing.T) {
	backends := map[string]func(t *testing.T) store.Backend{
		"memory": func(*testing.T) store.Backend { return store.NewMemory() },
		"sqlite": func(t *testing.T) store.Backend { return store.NewSQLite(database.TestSQLite(t)) },
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("absent collection loads empty and does not exist", func(t *testing.T) {
				repo := NewExpenseRepository(newBackend(t))

				expenses, err := repo.Load(ctx, "user_1")
				require.NoError(t, err)
				require.NotNil(t, expenses)
				require.Empty(t, expenses)

				exists, err := repo.Exists(ctx, "user_1")
				require.NoError(t, err)
				require.False(t, exists)
			})

			t.Run("round-trips expenses in order", func(t *testing.T) {
				repo := NewExpenseRepository(newBackend(t))
				want := sampleExpenses("user_1")

				require.NoError(t, repo.Save(ctx, "user_1", want))

				got, err := repo.Load(ctx, "user_1")
				require.NoError(t, err)
				requireSameExpenses(t, want, got)

				exists, err := repo.Exists(ctx, "user_1")
				require.NoError(t, err)
				require.True(t, exists)
			})

			t.Run("empty save still marks the collection written", func(t *testing.T) {
				repo := NewExpenseRepository(newBackend(t))

				require.NoError(t, repo.Save(ctx, "user_1", nil))

				exists, err := repo.Exists(ctx, "user_1")
				require.NoError(t, err)
				require.True(t, exists)

				got, err := repo.Load(ctx, "user_1")
				require.NoError(t, err)
				require.Empty(t, got)
			})

			t.Run("users are isolated", func(t *testing.T) {
				repo := NewExpenseRepository(newBackend(t))
				require.NoError(t, repo.Save(ctx, "user_1", sampleExpenses("user_1")))

				got, err := repo.Load(ctx, "user_2")
				require.NoError(t, err)
				require.Empty(t, got)
			})
		})
	}
}

func TestExpenseRepository_JSONLayout(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	repo := NewExpenseRepository(backend)

	require.NoError(t, repo.Save(ctx, "user_1", sampleExpenses("user_1")))

	payload, found, err := backend.Get(ctx, store.Key{UserID: "user_1", Kind: store.KindExpenses})
	require.NoError(t, err)
	require.True(t, found)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	require.Len(t, raw, 2)

	require.Equal(t, "exp_1", raw[0]["id"])
	require.Equal(t, "user_1", raw[0]["userId"])
	require.Equal(t, 25.5, raw[0]["amount"])
	require.Equal(t, "food", raw[0]["category"])
	require.Equal(t, "2026-03-04T12:30:00Z", raw[0]["date"])
	require.Equal(t, false, raw[0]["isRecurring"])
	require.NotContains(t, raw[0], "recurringInterval")

	require.Equal(t, float64(1200), raw[1]["amount"])
	require.Equal(t, "monthly", raw[1]["recurringInterval"])
}

func TestExpenseRepository_CorruptData(t *testing.T) {
	ctx := context.Background()
	key := store.Key{UserID: "user_1", Kind: store.KindExpenses}

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"not an array", `{"id":"exp_1"}`},
		{"amount as text", `[{"id":"exp_1","userId":"user_1","amount":"abc","category":"food","description":"x","date":"2026-03-04T00:00:00Z"}]`},
		{"unknown category", `[{"id":"exp_1","userId":"user_1","amount":5,"category":"pets","description":"x","date":"2026-03-04T00:00:00Z"}]`},
		{"non-positive amount", `[{"id":"exp_1","userId":"user_1","amount":0,"category":"food","description":"x","date":"2026-03-04T00:00:00Z"}]`},
		{"bad date", `[{"id":"exp_1","userId":"user_1","amount":5,"category":"food","description":"x","date":"yesterday"}]`},
		{"missing date", `[{"id":"exp_1","userId":"user_1","amount":5,"category":"food","description":"x"}]`},
		{"missing id", `[{"userId":"user_1","amount":5,"category":"food","description":"x","date":"2026-03-04T00:00:00Z"}]`},
		{"recurring without interval", `[{"id":"exp_1","userId":"user_1","amount":5,"category":"food","description":"x","date":"2026-03-04T00:00:00Z","isRecurring":true}]`},
		{"owned by another user", `[{"id":"exp_1","userId":"user_2","amount":5,"category":"food","description":"x","date":"2026-03-04T00:00:00Z"}]`},
		{"duplicate ids", `[
			{"id":"exp_1","userId":"user_1","amount":5,"category":"food","description":"x","date":"2026-03-04T00:00:00Z"},
			{"id":"exp_1","userId":"user_1","amount":6,"category":"food","description":"y","date":"2026-03-05T00:00:00Z"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := store.NewMemory()
			require.NoError(t, backend.Put(ctx, key, []byte(tt.payload)))

			expenses, err := NewExpenseRepository(backend).Load(ctx, "user_1")
			require.ErrorIs(t, err, models.ErrCorruptData)
			require.NotErrorIs(t, err, models.ErrValidation)
			require.Nil(t, expenses)
		})
	}

	t.Run("null payload is an empty collection", func(t *testing.T) {
		backend := store.NewMemory()
		require.NoError(t, backend.Put(ctx, key, []byte(`null`)))

		expenses, err := NewExpenseRepository(backend).Load(ctx, "user_1")
		require.NoError(t, err)
		require.Empty(t, expenses)
	})
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(store.NewSQLite(database.TestSQLite(t)))

	want := []models.Budget{
		{ID: "budget_1", UserID: "user_1", Category: models.CategoryFood, Amount: decimal.NewFromInt(500), Period: models.PeriodMonthly},
		{ID: "budget_2", UserID: "user_1", Category: models.CategoryTravel, Amount: decimal.RequireFromString("99.99"), Period: models.PeriodYearly},
	}

	exists, err := repo.Exists(ctx, "user_1")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.Save(ctx, "user_1", want))

	got, err := repo.Load(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Category, got[i].Category)
		require.Equal(t, want[i].Period, got[i].Period)
		require.True(t, want[i].Amount.Equal(got[i].Amount))
	}

	t.Run("invalid period is corrupt", func(t *testing.T) {
		backend := store.NewMemory()
		key := store.Key{UserID: "user_1", Kind: store.KindBudgets}
		require.NoError(t, backend.Put(ctx, key, []byte(`[{"id":"b","userId":"user_1","category":"food","amount":10,"period":"daily"}]`)))

		_, err := NewBudgetRepository(backend).Load(ctx, "user_1")
		require.ErrorIs(t, err, models.ErrCorruptData)
	})
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	repo := NewAccountRepository(backend)

	want := []models.Account{
		{ID: "acc_1", UserID: "user_1", Name: "Checking Account", Balance: decimal.RequireFromString("4750.25"), Type: models.AccountBank},
		{ID: "acc_3", UserID: "user_1", Name: "Credit Card", Balance: decimal.RequireFromString("-1250.45"), Type: models.AccountCredit},
	}
	require.NoError(t, repo.Save(ctx, "user_1", want))

	got, err := repo.Load(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Credit Card", got[1].Name)
	require.True(t, got[1].Balance.Equal(decimal.RequireFromString("-1250.45")))

	payload, _, err := backend.Get(ctx, store.Key{UserID: "user_1", Kind: store.KindAccounts})
	require.NoError(t, err)
	require.Contains(t, string(payload), `"balance":-1250.45`)

	t.Run("unknown type is corrupt", func(t *testing.T) {
		b := store.NewMemory()
		key := store.Key{UserID: "user_1", Kind: store.KindAccounts}
		require.NoError(t, b.Put(ctx, key, []byte(`[{"id":"a","userId":"user_1","name":"Wallet","balance":1,"type":"crypto"}]`)))

		_, err := NewAccountRepository(b).Load(ctx, "user_1")
		require.ErrorIs(t, err, models.ErrCorruptData)
	})
}

type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, store.Key) ([]byte, bool, error) { return nil, false, f.err }
func (f failingBackend) Put(context.Context, store.Key, []byte) error        { return f.err }

func TestRepository_BackendErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(failingBackend{err: models.ErrStoreUnavailable})

	_, err := repo.Load(ctx, "user_1")
	require.ErrorIs(t, err, models.ErrStoreUnavailable)

	_, err = repo.Exists(ctx, "user_1")
	require.ErrorIs(t, err, models.ErrStoreUnavailable)

	err = repo.Save(ctx, "user_1", sampleExpenses("user_1"))
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
}
