package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBillingDate_AnchoredOnCurrentDate(t *testing.T) {
	current := date(2026, time.March, 15)
	// Renewal processed three days late still advances from the anchor.
	now := date(2026, time.March, 18)

	next, closure := NextBillingDate(config.BillingPolicy{}, &current, now, 1, types.BillingPeriodMonth)
	require.False(t, closure)
	require.Equal(t, date(2026, time.April, 15), next)
}

func TestNextBillingDate_FallsBackToNow(t *testing.T) {
	now := date(2026, time.March, 18)

	next, closure := NextBillingDate(config.BillingPolicy{}, nil, now, 2, types.BillingPeriodWeek)
	require.False(t, closure)
	require.Equal(t, date(2026, time.April, 1), next)
}

func TestNextBillingDate_ZeroFrequencyDefaultsToOne(t *testing.T) {
	current := date(2026, time.March, 15)

	next, _ := NextBillingDate(config.BillingPolicy{}, &current, current, 0, types.BillingPeriodMonth)
	require.Equal(t, date(2026, time.April, 15), next)
}

func TestNextBillingDate_ClosureMovesToResumeDate(t *testing.T) {
	policy := config.BillingPolicy{
		ClosureStart: date(2026, time.December, 20),
		ClosureEnd:   date(2027, time.January, 10),
		ResumeDate:   date(2027, time.January, 12),
	}
	current := date(2026, time.November, 25)

	next, closure := NextBillingDate(policy, &current, current, 1, types.BillingPeriodMonth)
	require.True(t, closure)
	require.Equal(t, policy.ResumeDate, next)
}

func TestNextBillingDate_OutsideClosureUnaffected(t *testing.T) {
	policy := config.BillingPolicy{
		ClosureStart: date(2026, time.December, 20),
		ClosureEnd:   date(2027, time.January, 10),
		ResumeDate:   date(2027, time.January, 12),
	}
	current := date(2026, time.November, 10)

	next, closure := NextBillingDate(policy, &current, current, 1, types.BillingPeriodMonth)
	require.False(t, closure)
	require.Equal(t, date(2026, time.December, 10), next)
}
