// Package ledger is the application service for the expense ledger. It
// loads and saves per-user collections through the repositories, applies
// mutations under per-collection locks and derives summaries with package
// aggregate.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/repository"
	"gitlab.com/yelinaung/expense-ledger/internal/seed"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

const instrumentationName = "gitlab.com/yelinaung/expense-ledger/internal/ledger"

// Service answers ledger queries and applies mutations for any user.
// It is safe for concurrent use.
type Service struct {
	expenses *repository.ExpenseRepository
	budgets  *repository.BudgetRepository
	accounts *repository.AccountRepository

	seeder *seed.Generator
	now    func() time.Time
	newID  func(prefix string) string
	locks  keyedMutex

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	tracer         trace.Tracer
	mutations      metric.Int64Counter
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for "today" and the current month.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSeeder sets the generator used by EnsureInitialized.
func WithSeeder(g *seed.Generator) Option {
	return func(s *Service) { s.seeder = g }
}

// WithIDGenerator replaces the default "<prefix>_<uuid>" id scheme.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meterProvider = mp }
}

// New creates a Service over backend.
func New(backend store.Backend, opts ...Option) (*Service, error) {
	s := &Service{
		expenses: repository.NewExpenseRepository(backend),
		budgets:  repository.NewBudgetRepository(backend),
		accounts: repository.NewAccountRepository(backend),
		now:      time.Now,
		newID: func(prefix string) string {
			return prefix + "_" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.seeder == nil {
		s.seeder = seed.New(nil, s.now)
	}
	if s.tracerProvider == nil {
		s.tracerProvider = otel.GetTracerProvider()
	}
	if s.meterProvider == nil {
		s.meterProvider = otel.GetMeterProvider()
	}

	s.tracer = s.tracerProvider.Tracer(instrumentationName)
	counter, err := s.meterProvider.Meter(instrumentationName).Int64Counter(
		"ledger.mutations",
		metric.WithDescription("Ledger mutations by operation and outcome"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mutation counter: %w", err)
	}
	s.mutations = counter

	return s, nil
}

// start opens a span for op on behalf of userID. User ids are attached
// only in hashed form.
func (s *Service) start(ctx context.Context, op, userID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "ledger."+op,
		trace.WithAttributes(attribute.String("user.hash", logger.HashUserID(userID))))
}

// finish ends span, records err on it and, for mutations, counts the outcome.
func (s *Service) finish(ctx context.Context, span trace.Span, op string, mutation bool, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if mutation {
		s.mutations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("outcome", outcome(err)),
		))
	}
	span.End()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrDuplicateCategory),
		errors.Is(err, models.ErrImmutableField),
		errors.Is(err, models.ErrNotFound):
		return "rejected"
	default:
		return "error"
	}
}

func requireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", models.ErrValidation)
	}
	return nil
}

// EnsureInitialized seeds each of the user's collections that has never
// been written. Existing collections, even empty ones, are left alone, so
// repeated calls are harmless.
func (s *Service) EnsureInitialized(ctx context.Context, userID string) (err error) {
	ctx, span := s.start(ctx, "ensure_initialized", userID)
	defer func() { s.finish(ctx, span, "ensure_initialized", true, err) }()

	if err := requireUser(userID); err != nil {
		return err
	}

	seeded, err := seedIfAbsent(ctx, s, store.KindExpenses, userID, s.expenses.Exists, s.expenses.Save, s.seeder.Expenses)
	if err != nil {
		return err
	}
	seededBudgets, err := seedIfAbsent(ctx, s, store.KindBudgets, userID, s.budgets.Exists, s.budgets.Save, s.seeder.Budgets)
	if err != nil {
		return err
	}
	seededAccounts, err := seedIfAbsent(ctx, s, store.KindAccounts, userID, s.accounts.Exists, s.accounts.Save, s.seeder.Accounts)
	if err != nil {
		return err
	}

	if seeded || seededBudgets || seededAccounts {
		logger.Log.Info().
			Str("user", logger.HashUserID(userID)).
			Bool("expenses", seeded).
			Bool("budgets", seededBudgets).
			Bool("accounts", seededAccounts).
			Msg("Seeded ledger collections")
	}
	return nil
}

func seedIfAbsent[T any](
	ctx context.Context,
	s *Service,
	kind store.Kind,
	userID string,
	exists func(context.Context, string) (bool, error),
	save func(context.Context, string, []T) error,
	generate func(string) []T,
) (bool, error) {
	unlock := s.locks.lock(store.Key{UserID: userID, Kind: kind})
	defer unlock()

	ok, err := exists(ctx, userID)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := save(ctx, userID, generate(userID)); err != nil {
		return false, fmt.Errorf("failed to seed %s: %w", kind, err)
	}
	return true, nil
}
