package subscription

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/internal/platform/payment"
	"github.com/fernhill/farmbox/pkg/logctx"
	"github.com/fernhill/farmbox/pkg/metrics"
	"github.com/fernhill/farmbox/pkg/types"
)

// RenewalResult is the structured outcome of a renewal attempt. A declined
// charge yields Success=false with Message set; the caller decides whether
// to retry, notify or escalate.
type RenewalResult struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	TransactionID string     `json:"transaction_id,omitempty"`
	NextBillingAt *time.Time `json:"next_billing_at,omitempty"`
	PlanApplied   *string    `json:"plan_applied,omitempty"`
}

// ProcessRenewal charges one billing cycle and advances next_billing_at.
//
// A pending scheduled plan change is applied first, so the charge is for the
// plan the customer will actually receive. The gateway call happens outside
// the DB transaction: money movement is the gateway's truth, local state
// commits only after a successful response. The commit carries an optimistic
// guard on next_billing_at so two racing renewals cannot both advance the
// same cycle.
func (s *Service) ProcessRenewal(ctx context.Context, id string) (*RenewalResult, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !sub.Billable(now) {
		return nil, fmt.Errorf("%w: status=%s", ErrNotBillable, sub.StatusAt(now))
	}
	if sub.SkipAutoRenewal {
		return nil, ErrRenewalSkipped
	}

	// Apply a deferred plan change before charging.
	var scheduled *models.Plan
	if sub.ScheduledPlanID != nil {
		var p models.Plan
		if err := s.db.WithContext(ctx).Where("id = ?", *sub.ScheduledPlanID).First(&p).Error; err != nil {
			return nil, fmt.Errorf("failed to load scheduled plan %s: %w", *sub.ScheduledPlanID, err)
		}
		scheduled = &p
	}

	price := sub.Price
	if scheduled != nil {
		price = scheduled.Price
	}

	custRef := ""
	if sub.CustomerID != nil {
		custRef = *sub.CustomerID
	}
	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		SubscriptionID: sub.ID,
		CustomerRef:    custRef,
		Amount:         price,
		Description:    fmt.Sprintf("%s renewal", sub.PlanName),
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	if !charge.Success {
		metrics.RenewalTotal.WithLabelValues("declined").Inc()
		if err := s.recordRenewalFailure(ctx, sub.ID, charge.Error); err != nil {
			return nil, err
		}
		return &RenewalResult{Success: false, Message: "charge declined: " + charge.Error}, nil
	}

	var result *RenewalResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockForUpdate(ctx, tx, sub.ID)
		if err != nil {
			return err
		}
		// At-most-once advance per billing cycle: someone else renewed
		// between our read and this lock.
		if !equalTimePtr(locked.NextBillingAt, sub.NextBillingAt) {
			return ErrConflict
		}

		before := snapshot(locked)
		extra := datatypes.JSONMap{"transaction_id": charge.TransactionID}

		if scheduled != nil {
			applyPlan(locked, scheduled)
			locked.ScheduledPlanID = nil
			extra["scheduled_plan_applied"] = scheduled.ID
		}

		next, closed := NextBillingDate(s.cfg.Billing, locked.NextBillingAt, now, locked.BillingFrequency, locked.BillingPeriod)
		if closed {
			// Seasonal shutdown: billing resumes only once an operator
			// clears the flag.
			locked.SkipAutoRenewal = true
			extra["closure_applied"] = true
		}
		locked.NextBillingAt = &next
		locked.LastPaymentDate = &now
		locked.FailedPaymentCount = 0

		if err := tx.WithContext(ctx).Save(locked).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		msg := fmt.Sprintf("renewed for %s, next billing %s", price.StringFixed(2), next.Format("2006-01-02"))
		if err := s.appendAudit(ctx, tx, types.AuditActionRenewed, msg, before, locked, extra); err != nil {
			return err
		}

		result = &RenewalResult{
			Success:       true,
			Message:       msg,
			TransactionID: charge.TransactionID,
			NextBillingAt: &next,
		}
		if scheduled != nil {
			result.PlanApplied = &scheduled.ID
		}
		return nil
	})
	if err != nil {
		// Money moved but local state did not commit; surface loudly so the
		// operator can reconcile against the gateway transaction.
		logctx.FromCtx(ctx, s.log).Errorw("renewal commit failed after successful charge",
			"subscription_id", sub.ID, "transaction_id", charge.TransactionID, "err", err)
		return nil, err
	}

	metrics.RenewalTotal.WithLabelValues("success").Inc()
	return result, nil
}

// recordRenewalFailure bumps the failure counter and audits the decline
// without touching the billing schedule.
func (s *Service) recordRenewalFailure(ctx context.Context, id, reason string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		before := snapshot(locked)
		locked.FailedPaymentCount++
		if err := tx.WithContext(ctx).Save(locked).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		return s.appendAudit(ctx, tx, types.AuditActionRenewalFailed,
			"charge declined: "+reason, before, locked,
			datatypes.JSONMap{"failed_payment_count": locked.FailedPaymentCount})
	})
}

// applyPlan copies a plan's values onto the subscription.
func applyPlan(sub *models.Subscription, plan *models.Plan) {
	sub.PlanID = plan.ID
	sub.PlanName = plan.Name
	sub.PlanDescription = plan.Description
	sub.Price = plan.Price
	sub.BoxSize = plan.BoxSize
	sub.DeliveryFrequency = plan.DeliveryFrequency
	sub.BillingFrequency = plan.InvoicePeriod
	sub.BillingPeriod = plan.InvoiceInterval
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
