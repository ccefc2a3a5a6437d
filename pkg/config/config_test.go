package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBillingPolicyInClosure_WindowBounds(t *testing.T) {
	policy := BillingPolicy{
		ClosureStart: time.Date(2026, time.December, 20, 0, 0, 0, 0, time.UTC),
		ClosureEnd:   time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC),
		ResumeDate:   time.Date(2027, time.January, 12, 0, 0, 0, 0, time.UTC),
	}

	// Start is inclusive, end is exclusive.
	require.True(t, policy.InClosure(policy.ClosureStart))
	require.True(t, policy.InClosure(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
	require.False(t, policy.InClosure(policy.ClosureEnd))
	require.False(t, policy.InClosure(time.Date(2026, time.December, 19, 0, 0, 0, 0, time.UTC)))
}

func TestBillingPolicyInClosure_ZeroWindowDisables(t *testing.T) {
	var policy BillingPolicy
	require.False(t, policy.InClosure(time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)))
}
