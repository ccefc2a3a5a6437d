package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fernhill/farmbox/pkg/types"
)

var statusNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func TestSubscriptionStatusAt(t *testing.T) {
	future := statusNow.AddDate(0, 0, 10)
	past := statusNow.AddDate(0, 0, -10)

	tests := []struct {
		name string
		sub  Subscription
		want types.SubscriptionStatus
	}{
		{"no lifecycle timestamps", Subscription{}, types.SubscriptionStatusActive},
		{"cancelled", Subscription{CanceledAt: timePtr(past)}, types.SubscriptionStatusCancelled},
		{"paused until future", Subscription{PauseUntil: timePtr(future)}, types.SubscriptionStatusPaused},
		{"pause already elapsed", Subscription{PauseUntil: timePtr(past)}, types.SubscriptionStatusActive},
		{"pending cancellation", Subscription{CancelsAt: timePtr(future)}, types.SubscriptionStatusPendingCancellation},
		{"cancels_at already elapsed", Subscription{CancelsAt: timePtr(past)}, types.SubscriptionStatusActive},
		{"cancellation wins over pause", Subscription{CanceledAt: timePtr(past), PauseUntil: timePtr(future)}, types.SubscriptionStatusCancelled},
		{"pause wins over pending cancellation", Subscription{PauseUntil: timePtr(future), CancelsAt: timePtr(future)}, types.SubscriptionStatusPaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.sub.StatusAt(statusNow))
		})
	}
}

func TestSubscriptionBillable(t *testing.T) {
	future := statusNow.AddDate(0, 0, 10)

	require.True(t, (&Subscription{}).Billable(statusNow))
	require.True(t, (&Subscription{CancelsAt: timePtr(future)}).Billable(statusNow))
	require.False(t, (&Subscription{PauseUntil: timePtr(future)}).Billable(statusNow))
	require.False(t, (&Subscription{CanceledAt: timePtr(statusNow)}).Billable(statusNow))
}

func TestSubscriptionArchived(t *testing.T) {
	past := statusNow.AddDate(0, 0, -1)
	future := statusNow.AddDate(0, 0, 30)

	require.False(t, (&Subscription{}).Archived(statusNow))
	// Within the grace period the record still shows in default views.
	require.False(t, (&Subscription{CanceledAt: timePtr(past), EndsAt: timePtr(future)}).Archived(statusNow))
	require.True(t, (&Subscription{CanceledAt: timePtr(past), EndsAt: timePtr(past)}).Archived(statusNow))
}
