package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProrationAmount_UpgradeMidCycle(t *testing.T) {
	startsAt := date(2026, time.March, 1)
	nextBilling := date(2026, time.March, 31) // 30-day cycle
	now := date(2026, time.March, 16)         // 15 days used, 15 remaining

	// Unused value of the old plan: 40 * 15/30 = 20. Charge: 60 - 20 = 40.
	got := ProrationAmount(decimal.NewFromInt(40), decimal.NewFromInt(60), startsAt, nextBilling, now)
	require.True(t, got.Equal(decimal.NewFromInt(40)), "got %s", got)
}

func TestProrationAmount_DowngradeIsNegative(t *testing.T) {
	startsAt := date(2026, time.March, 1)
	nextBilling := date(2026, time.March, 31)
	now := date(2026, time.March, 16)

	// Unused 60 * 15/30 = 30; new price 20 leaves a 10 credit.
	got := ProrationAmount(decimal.NewFromInt(60), decimal.NewFromInt(20), startsAt, nextBilling, now)
	require.True(t, got.Equal(decimal.NewFromInt(-10)), "got %s", got)
}

func TestProrationAmount_CycleFullyUsed(t *testing.T) {
	startsAt := date(2026, time.March, 1)
	nextBilling := date(2026, time.March, 31)
	now := date(2026, time.April, 2) // past the billing date

	// Nothing unused to credit: the full new price is due.
	got := ProrationAmount(decimal.NewFromInt(40), decimal.NewFromInt(60), startsAt, nextBilling, now)
	require.True(t, got.Equal(decimal.NewFromInt(60)), "got %s", got)
}

func TestProrationAmount_ZeroLengthCycle(t *testing.T) {
	day := date(2026, time.March, 1)

	got := ProrationAmount(decimal.NewFromInt(40), decimal.NewFromInt(60), day, day, day)
	require.True(t, got.Equal(decimal.NewFromInt(60)), "got %s", got)
}

func TestProrationAmount_RoundsToPence(t *testing.T) {
	startsAt := date(2026, time.March, 1)
	nextBilling := date(2026, time.March, 31)
	now := date(2026, time.March, 11) // 10 used, 20 remaining of 30

	// Unused 25 * 20/30 = 16.666..., charge 35 - 16.666... = 18.33.
	got := ProrationAmount(decimal.NewFromInt(25), decimal.NewFromInt(35), startsAt, nextBilling, now)
	require.Equal(t, "18.33", got.StringFixed(2))
}
