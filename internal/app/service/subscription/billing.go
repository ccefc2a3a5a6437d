package subscription

import (
	"time"

	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/types"
)

// NextBillingDate computes the billing date after a successful renewal.
// The cycle is anchored on the current next_billing_at when present (so a
// late manual renewal does not shift the schedule) and on now otherwise.
// Calendar arithmetic, not elapsed seconds: one month from 15 March is
// 15 April regardless of month length.
//
// When the computed date falls inside the policy's closure window it is
// replaced by the resume date; closureApplied reports this so the caller can
// set skip_auto_renewal.
func NextBillingDate(policy config.BillingPolicy, current *time.Time, now time.Time, frequency int, period types.BillingPeriod) (next time.Time, closureApplied bool) {
	base := now
	if current != nil {
		base = *current
	}
	if frequency < 1 {
		frequency = 1
	}
	next = period.Add(base, frequency)
	if policy.InClosure(next) {
		return policy.ResumeDate, true
	}
	return next, false
}
