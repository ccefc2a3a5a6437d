package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/internal/platform/payment"
	"github.com/fernhill/farmbox/pkg/types"
)

// ChangePlanOptions controls when and how a plan change applies.
type ChangePlanOptions struct {
	// Immediate applies the change now; otherwise it is deferred to the
	// next successful renewal via scheduled_plan_id.
	Immediate bool `json:"immediate"`
	// Prorate charges the upgrade difference for the unused part of the
	// current cycle. Only meaningful with Immediate.
	Prorate bool `json:"prorate"`
}

// PlanChangeResult reports what was applied and charged.
type PlanChangeResult struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Scheduled     bool             `json:"scheduled"`
	Prorated      bool             `json:"prorated"`
	ProrateAmount *decimal.Decimal `json:"prorate_amount,omitempty"`
	TransactionID string           `json:"transaction_id,omitempty"`
}

// ProrationAmount computes the immediate charge for a mid-cycle plan change:
// the new plan price minus the unused value of the current cycle. Positive
// means an upgrade charge; zero or negative means a credit that is logged
// but not refunded here. Day granularity, matching how the cycle was sold.
func ProrationAmount(oldPrice, newPrice decimal.Decimal, startsAt, nextBillingAt, now time.Time) decimal.Decimal {
	totalDays := int(nextBillingAt.Sub(startsAt).Hours() / 24)
	daysUsed := int(now.Sub(startsAt).Hours() / 24)
	daysRemaining := totalDays - daysUsed
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	unused := decimal.Zero
	if totalDays > 0 {
		unused = oldPrice.
			Mul(decimal.NewFromInt(int64(daysRemaining))).
			Div(decimal.NewFromInt(int64(totalDays)))
	}
	return newPrice.Sub(unused).Round(2)
}

// ChangePlan switches the subscription to newPlanID. Deferred changes only
// set scheduled_plan_id; the renewal path applies them. Immediate prorated
// upgrades charge the difference first and abort without mutating anything
// if the charge is declined.
func (s *Service) ChangePlan(ctx context.Context, id, newPlanID string, opts ChangePlanOptions) (*PlanChangeResult, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.PlanID == newPlanID {
		return nil, ErrSamePlan
	}

	var newPlan models.Plan
	if err := s.db.WithContext(ctx).Where("id = ?", newPlanID).First(&newPlan).Error; err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", newPlanID, err)
	}

	if !opts.Immediate {
		return s.schedulePlanChange(ctx, sub.ID, &newPlan)
	}

	now := time.Now()
	result := &PlanChangeResult{Success: true}

	var prorateAmount decimal.Decimal
	if opts.Prorate && sub.NextBillingAt != nil {
		prorateAmount = ProrationAmount(sub.Price, newPlan.Price, sub.StartsAt, *sub.NextBillingAt, now)
		result.Prorated = true
		result.ProrateAmount = &prorateAmount

		if prorateAmount.IsPositive() {
			custRef := ""
			if sub.CustomerID != nil {
				custRef = *sub.CustomerID
			}
			charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
				SubscriptionID: sub.ID,
				CustomerRef:    custRef,
				Amount:         prorateAmount,
				Description:    fmt.Sprintf("upgrade to %s (prorated)", newPlan.Name),
			})
			if err != nil {
				return nil, fmt.Errorf("payment gateway error: %w", err)
			}
			if !charge.Success {
				// Old plan stays active.
				return &PlanChangeResult{
					Success:       false,
					Prorated:      true,
					ProrateAmount: &prorateAmount,
					Message:       "proration charge declined, plan unchanged: " + charge.Error,
				}, nil
			}
			result.TransactionID = charge.TransactionID
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockForUpdate(ctx, tx, sub.ID)
		if err != nil {
			return err
		}
		if locked.PlanID != sub.PlanID {
			return ErrConflict
		}

		before := snapshot(locked)
		applyPlan(locked, &newPlan)
		// An immediate change supersedes any deferred one.
		locked.ScheduledPlanID = nil

		if err := tx.WithContext(ctx).Save(locked).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		extra := datatypes.JSONMap{
			"old_plan_id": before.PlanID,
			"new_plan_id": newPlan.ID,
			"old_price":   before.Price.StringFixed(2),
			"new_price":   newPlan.Price.StringFixed(2),
			"prorated":    result.Prorated,
		}
		if result.ProrateAmount != nil {
			extra["prorate_amount"] = result.ProrateAmount.StringFixed(2)
		}
		if result.TransactionID != "" {
			extra["transaction_id"] = result.TransactionID
		}
		msg := fmt.Sprintf("plan changed from %s to %s", before.PlanName, newPlan.Name)
		if err := s.appendAudit(ctx, tx, types.AuditActionPlanChanged, msg, before, locked, extra); err != nil {
			return err
		}
		result.Message = msg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) schedulePlanChange(ctx context.Context, id string, newPlan *models.Plan) (*PlanChangeResult, error) {
	var result *PlanChangeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		before := snapshot(locked)
		locked.ScheduledPlanID = &newPlan.ID

		if err := tx.WithContext(ctx).Save(locked).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		msg := fmt.Sprintf("plan change to %s scheduled for next renewal", newPlan.Name)
		if err := s.appendAudit(ctx, tx, types.AuditActionPlanScheduled, msg, before, locked,
			datatypes.JSONMap{"scheduled_plan_id": newPlan.ID}); err != nil {
			return err
		}
		result = &PlanChangeResult{Success: true, Scheduled: true, Message: msg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
