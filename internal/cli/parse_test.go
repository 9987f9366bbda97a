package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "5", want: "5"},
		{input: "5.50", want: "5.5"},
		{input: "5,50", want: "5.5"},
		{input: "$12.5", want: "12.5"},
		{input: "1,250.45", want: "1250.45"},
		{input: "1,250", want: "1250"},
		{input: "  42  ", want: "42"},
		{input: "0", wantErr: true},
		{input: "-10", wantErr: true},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "5.5.5", wantErr: true},
		{input: "5.555", wantErr: true},
		{input: "1e10", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseSignedAmount(t *testing.T) {
	t.Parallel()

	got, err := parseSignedAmount("-1250.45")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("-1250.45")))

	got, err = parseSignedAmount("-$3")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(-3)))

	got, err = parseSignedAmount("0")
	require.NoError(t, err)
	require.True(t, got.IsZero())

	_, err = parseSignedAmount("--3")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

	got, err := parseDate("", now)
	require.NoError(t, err)
	require.Equal(t, now, got)

	got, err = parseDate("Today", now)
	require.NoError(t, err)
	require.Equal(t, now, got)

	got, err = parseDate("yesterday", now)
	require.NoError(t, err)
	require.Equal(t, now.AddDate(0, 0, -1), got)

	got, err = parseDate("2026-02-28", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("28/02/2026", now)
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = parseDate("2026-02-30", now)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestEndOfDay(t *testing.T) {
	t.Parallel()

	eod := endOfDay(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 15, eod.Day())
	require.True(t, eod.Add(time.Nanosecond).Equal(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"food", "FOOD", " Food & Dining "} {
		got, err := parseCategory(in)
		require.NoError(t, err, in)
		require.Equal(t, models.CategoryFood, got)
	}

	got, err := parseCategory("housing & rent")
	require.NoError(t, err)
	require.Equal(t, models.CategoryHousing, got)

	_, err = parseCategory("pets")
	require.ErrorIs(t, err, models.ErrValidation)

	cats, err := parseCategories([]string{"food", "travel"})
	require.NoError(t, err)
	require.Equal(t, []models.Category{models.CategoryFood, models.CategoryTravel}, cats)

	_, err = parseCategories([]string{"food", "pets"})
	require.Error(t, err)
}
