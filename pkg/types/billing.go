package types

import (
	"fmt"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive              SubscriptionStatus = "active"
	SubscriptionStatusPaused              SubscriptionStatus = "paused"
	SubscriptionStatusPendingCancellation SubscriptionStatus = "pending_cancellation"
	SubscriptionStatusCancelled           SubscriptionStatus = "cancelled"
)

// BillingPeriod is the calendar unit a billing frequency counts in.
type BillingPeriod string

const (
	BillingPeriodDay   BillingPeriod = "day"
	BillingPeriodWeek  BillingPeriod = "week"
	BillingPeriodMonth BillingPeriod = "month"
	BillingPeriodYear  BillingPeriod = "year"
)

func ParseBillingPeriod(s string) (BillingPeriod, error) {
	switch BillingPeriod(s) {
	case BillingPeriodDay, BillingPeriodWeek, BillingPeriodMonth, BillingPeriodYear:
		return BillingPeriod(s), nil
	}
	return "", fmt.Errorf("invalid billing period: %q", s)
}

// Add advances t by count units using calendar arithmetic, never
// elapsed-seconds approximation. Weeks are exact 7-day steps; months and
// years go through AddDate so month-length normalization is the standard
// library's.
func (p BillingPeriod) Add(t time.Time, count int) time.Time {
	switch p {
	case BillingPeriodDay:
		return t.AddDate(0, 0, count)
	case BillingPeriodWeek:
		return t.AddDate(0, 0, 7*count)
	case BillingPeriodMonth:
		return t.AddDate(0, count, 0)
	case BillingPeriodYear:
		return t.AddDate(count, 0, 0)
	default:
		return t
	}
}

type AuditAction string

const (
	AuditActionRenewed       AuditAction = "renewed"
	AuditActionRenewalFailed AuditAction = "renewal_failed"
	AuditActionCancelled     AuditAction = "cancelled"
	AuditActionReactivated   AuditAction = "reactivated"
	AuditActionPlanChanged   AuditAction = "plan_changed"
	AuditActionPlanScheduled AuditAction = "plan_scheduled"
)
