package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernhill/farmbox/pkg/types"
)

// Subscription is a customer's enrollment in a Plan, with its own
// billing-schedule state. Plan values (name, price, cadence) are denormalized
// onto the subscription at signup and on plan change, so later plan edits do
// not retroactively reprice live subscriptions.
//
// Status is never stored: StatusAt derives it from the lifecycle timestamps,
// which keeps a persisted status column from drifting out of sync.
type Subscription struct {
	ID string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	// ExternalRef links subscriptions imported from the shop platform.
	ExternalRef *string `gorm:"column:external_ref;type:varchar(64);uniqueIndex;default:null" json:"external_ref"`

	PlanID            string              `gorm:"column:plan_id;type:uuid;not null;index" json:"plan_id"`
	PlanName          string              `gorm:"column:plan_name;type:varchar(128);not null" json:"plan_name"`
	PlanDescription   string              `gorm:"column:plan_description;type:text" json:"plan_description"`
	Price             decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	BoxSize           string              `gorm:"column:box_size;type:varchar(32)" json:"box_size"`
	DeliveryFrequency string              `gorm:"column:delivery_frequency;type:varchar(32)" json:"delivery_frequency"`
	BillingFrequency  int                 `gorm:"column:billing_frequency;not null;default:1" json:"billing_frequency"`
	BillingPeriod     types.BillingPeriod `gorm:"column:billing_period;type:varchar(16);not null" json:"billing_period"`

	StartsAt           time.Time  `gorm:"column:starts_at;not null" json:"starts_at"`
	NextBillingAt      *time.Time `gorm:"column:next_billing_at;default:null;index" json:"next_billing_at"`
	FailedPaymentCount int        `gorm:"column:failed_payment_count;not null;default:0" json:"failed_payment_count"`
	LastPaymentDate    *time.Time `gorm:"column:last_payment_date;default:null" json:"last_payment_date"`

	CanceledAt *time.Time `gorm:"column:canceled_at;default:null" json:"canceled_at"`
	// EndsAt marks the end of the post-cancellation grace period.
	EndsAt     *time.Time `gorm:"column:ends_at;default:null" json:"ends_at"`
	PauseUntil *time.Time `gorm:"column:pause_until;default:null" json:"pause_until"`
	// CancelsAt is a future-dated pending cancellation.
	CancelsAt       *time.Time `gorm:"column:cancels_at;default:null" json:"cancels_at"`
	SkipAutoRenewal bool       `gorm:"column:skip_auto_renewal;not null;default:false" json:"skip_auto_renewal"`
	// ScheduledPlanID defers a plan change to the next successful renewal.
	ScheduledPlanID *string `gorm:"column:scheduled_plan_id;type:uuid;default:null" json:"scheduled_plan_id"`

	// CustomerID is nullable; legacy imports may only carry name/email.
	CustomerID    *string `gorm:"column:customer_id;type:varchar(64);index;default:null" json:"customer_id"`
	CustomerName  string  `gorm:"column:customer_name;type:varchar(128)" json:"customer_name"`
	CustomerEmail string  `gorm:"column:customer_email;type:varchar(128)" json:"customer_email"`

	NextDeliveryDate *time.Time `gorm:"column:next_delivery_date;default:null" json:"next_delivery_date"`
	DeliveryDay      string     `gorm:"column:delivery_day;type:varchar(16)" json:"delivery_day"`
	DeliveryTime     string     `gorm:"column:delivery_time;type:varchar(32)" json:"delivery_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// StatusAt derives the lifecycle status at the given instant. Rule order
// matters: cancellation wins over pause, pause over pending cancellation.
func (s *Subscription) StatusAt(now time.Time) types.SubscriptionStatus {
	switch {
	case s.CanceledAt != nil:
		return types.SubscriptionStatusCancelled
	case s.PauseUntil != nil && s.PauseUntil.After(now):
		return types.SubscriptionStatusPaused
	case s.CancelsAt != nil && s.CancelsAt.After(now):
		return types.SubscriptionStatusPendingCancellation
	default:
		return types.SubscriptionStatusActive
	}
}

// Billable reports whether a renewal may charge this subscription at now.
// Pending cancellation is still billable until cancels_at passes.
func (s *Subscription) Billable(now time.Time) bool {
	switch s.StatusAt(now) {
	case types.SubscriptionStatusActive, types.SubscriptionStatusPendingCancellation:
		return true
	}
	return false
}

// Archived reports whether a cancelled subscription's grace period has
// passed and it should drop out of the default admin views.
func (s *Subscription) Archived(now time.Time) bool {
	return s.CanceledAt != nil && s.EndsAt != nil && s.EndsAt.Before(now)
}
