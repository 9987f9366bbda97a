package ledger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"gitlab.com/yelinaung/expense-ledger/internal/database"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/seed"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

var testNow = time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

// recordingBackend counts writes and can be told to reject them.
type recordingBackend struct {
	store.Backend

	mu      sync.Mutex
	puts    int
	failPut error
}

func (b *recordingBackend) Put(ctx context.Context, key store.Key, payload []byte) error {
	b.mu.Lock()
	b.puts++
	fail := b.failPut
	b.mu.Unlock()
	if fail != nil {
		return fail
	}
	return b.Backend.Put(ctx, key, payload)
}

func (b *recordingBackend) putCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.puts
}

func (b *recordingBackend) setFailPut(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPut = err
}

func newTestService(t *testing.T, opts ...Option) (*Service, *recordingBackend) {
	t.Helper()

	backend := &recordingBackend{Backend: store.NewMemory()}
	clock := func() time.Time { return testNow }

	var mu sync.Mutex
	next := 0
	ids := func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("%s_%d", prefix, next)
	}

	base := []Option{
		WithClock(clock),
		WithSeeder(seed.New(rand.New(rand.NewPCG(1, 2)), clock)),
		WithIDGenerator(ids),
	}
	svc, err := New(backend, append(base, opts...)...)
	require.NoError(t, err)
	return svc, backend
}

func draftExpense(amount string, category models.Category, date time.Time) models.Expense {
	return models.Expense{
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: "Test " + string(category),
		Date:        date,
	}
}

func TestEnsureInitialized(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds empty user", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))

		expenses, err := svc.ListExpenses(ctx, "user_1")
		require.NoError(t, err)
		require.Len(t, expenses, seed.ExpenseCount)

		budgets, err := svc.ListBudgets(ctx, "user_1")
		require.NoError(t, err)
		require.Len(t, budgets, 5)

		accounts, err := svc.ListAccounts(ctx, "user_1")
		require.NoError(t, err)
		require.Len(t, accounts, 5)
	})

	t.Run("second call changes nothing", func(t *testing.T) {
		svc, backend := newTestService(t)
		require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))

		before := snapshot(t, backend, "user_1")
		puts := backend.putCount()

		require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))
		require.Equal(t, before, snapshot(t, backend, "user_1"))
		require.Equal(t, puts, backend.putCount())
	})

	t.Run("does not reseed a collection emptied by the user", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))

		accounts, err := svc.ListAccounts(ctx, "user_1")
		require.NoError(t, err)
		for _, a := range accounts {
			require.NoError(t, svc.DeleteAccount(ctx, "user_1", a.ID))
		}

		require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))
		accounts, err = svc.ListAccounts(ctx, "user_1")
		require.NoError(t, err)
		require.Empty(t, accounts)
	})

	t.Run("only fills missing collections", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateBudget(ctx, "user_1", models.Budget{
			Category: models.CategoryTravel,
			Amount:   decimal.NewFromInt(900),
			Period:   models.PeriodYearly,
		})
		require.NoError(t, err)

		require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))

		budgets, err := svc.ListBudgets(ctx, "user_1")
		require.NoError(t, err)
		require.Len(t, budgets, 1)

		expenses, err := svc.ListExpenses(ctx, "user_1")
		require.NoError(t, err)
		require.Len(t, expenses, seed.ExpenseCount)
	})

	t.Run("requires a user", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.ErrorIs(t, svc.EnsureInitialized(ctx, ""), models.ErrValidation)
	})

	t.Run("persists across service instances on sqlite", func(t *testing.T) {
		backend := store.NewSQLite(database.TestSQLite(t))

		first, err := New(backend, WithClock(func() time.Time { return testNow }))
		require.NoError(t, err)
		require.NoError(t, first.EnsureInitialized(ctx, "user_1"))
		want, err := first.ListExpenses(ctx, "user_1")
		require.NoError(t, err)

		second, err := New(backend)
		require.NoError(t, err)
		require.NoError(t, second.EnsureInitialized(ctx, "user_1"))
		got, err := second.ListExpenses(ctx, "user_1")
		require.NoError(t, err)

		require.Len(t, got, len(want))
		for i := range want {
			require.Equal(t, want[i].ID, got[i].ID)
			require.True(t, want[i].Date.Equal(got[i].Date))
			require.True(t, want[i].Amount.Equal(got[i].Amount))
		}
	})
}

func snapshot(t *testing.T, b store.Backend, userID string) map[store.Kind]string {
	t.Helper()
	out := make(map[store.Kind]string)
	for _, kind := range []store.Kind{store.KindExpenses, store.KindBudgets, store.KindAccounts} {
		payload, found, err := b.Get(context.Background(), store.Key{UserID: userID, Kind: kind})
		require.NoError(t, err)
		if found {
			out[kind] = string(payload)
		}
	}
	return out
}

func TestCorruptDataIsNotMasked(t *testing.T) {
	ctx := context.Background()
	svc, backend := newTestService(t)

	key := store.Key{UserID: "user_1", Kind: store.KindExpenses}
	require.NoError(t, backend.Backend.Put(ctx, key, []byte(`[{"id":"x"}]`)))

	_, err := svc.ListExpenses(ctx, "user_1")
	require.ErrorIs(t, err, models.ErrCorruptData)

	_, err = svc.DashboardSummary(ctx, "user_1")
	require.ErrorIs(t, err, models.ErrCorruptData)

	_, err = svc.CreateExpense(ctx, "user_1", draftExpense("5", models.CategoryFood, testNow))
	require.ErrorIs(t, err, models.ErrCorruptData)

	require.NoError(t, svc.EnsureInitialized(ctx, "user_1"))
	payload, _, err := backend.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"x"}]`, string(payload))
}

func TestConcurrentCreatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	const writers = 40
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Go(func() {
			_, err := svc.CreateExpense(ctx, "user_1", draftExpense(fmt.Sprintf("%d.25", i+1), models.CategoryFood, testNow))
			errs <- err
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	expenses, err := svc.ListExpenses(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, expenses, writers)
	require.Zero(t, svc.locks.size())
}

func TestTelemetry(t *testing.T) {
	ctx := context.Background()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc, _ := newTestService(t, WithTracerProvider(tp), WithMeterProvider(mp))

	_, err := svc.CreateExpense(ctx, "user_1", draftExpense("5", models.CategoryFood, testNow))
	require.NoError(t, err)
	_, err = svc.CreateExpense(ctx, "user_1", draftExpense("0", models.CategoryFood, testNow))
	require.ErrorIs(t, err, models.ErrValidation)
	_, err = svc.ListExpenses(ctx, "user_1")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	require.Equal(t, "ledger.create_expense", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "ledger.list_expenses", spans[2].Name())
	for _, attr := range spans[0].Attributes() {
		require.NotEqual(t, "user_1", attr.Value.AsString())
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "ledger.mutations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value("op")
				outcome, _ := dp.Attributes.Value("outcome")
				counts[op.AsString()+"/"+outcome.AsString()] += dp.Value
			}
		}
	}
	require.Equal(t, map[string]int64{
		"create_expense/ok":       1,
		"create_expense/rejected": 1,
	}, counts)
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ok", outcome(nil))
	require.Equal(t, "rejected", outcome(fmt.Errorf("wrap: %w", models.ErrNotFound)))
	require.Equal(t, "rejected", outcome(models.ErrDuplicateCategory))
	require.Equal(t, "error", outcome(models.ErrStoreUnavailable))
	require.Equal(t, "error", outcome(models.ErrCorruptData))
}
