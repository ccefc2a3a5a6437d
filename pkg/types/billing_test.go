package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillingPeriodAdd_MonthKeepsDayOfMonth(t *testing.T) {
	got := BillingPeriodMonth.Add(date(2026, time.March, 15), 1)
	require.Equal(t, date(2026, time.April, 15), got)
}

func TestBillingPeriodAdd_MonthAcrossDifferentLengths(t *testing.T) {
	// 30-day and 31-day months in a row must not drift the anchor day.
	got := BillingPeriodMonth.Add(date(2026, time.April, 15), 1)
	require.Equal(t, date(2026, time.May, 15), got)

	got = BillingPeriodMonth.Add(got, 1)
	require.Equal(t, date(2026, time.June, 15), got)
}

func TestBillingPeriodAdd_WeekIsSevenDays(t *testing.T) {
	got := BillingPeriodWeek.Add(date(2026, time.January, 29), 1)
	require.Equal(t, date(2026, time.February, 5), got)
}

func TestBillingPeriodAdd_MultipleCounts(t *testing.T) {
	require.Equal(t, date(2026, time.March, 29), BillingPeriodWeek.Add(date(2026, time.March, 1), 4))
	require.Equal(t, date(2026, time.March, 4), BillingPeriodDay.Add(date(2026, time.March, 1), 3))
	require.Equal(t, date(2028, time.March, 1), BillingPeriodYear.Add(date(2026, time.March, 1), 2))
}

func TestParseBillingPeriod(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		p, err := ParseBillingPeriod(valid)
		require.NoError(t, err)
		require.Equal(t, BillingPeriod(valid), p)
	}

	_, err := ParseBillingPeriod("fortnight")
	require.Error(t, err)
}
