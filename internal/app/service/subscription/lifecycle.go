package subscription

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/logctx"
	"github.com/fernhill/farmbox/pkg/types"
)

// CancelResult reports the outcome of a cancellation.
type CancelResult struct {
	AlreadyCancelled bool       `json:"already_cancelled"`
	CanceledAt       *time.Time `json:"canceled_at,omitempty"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	Message          string     `json:"message"`
}

// Cancel marks the subscription cancelled with a wind-down grace period of
// policy.GraceDays. Cancelling an already-cancelled subscription mutates
// nothing but still audits the duplicate attempt. The customer notification
// is fire-and-forget after commit.
func (s *Service) Cancel(ctx context.Context, id, reason string, immediate bool) (*CancelResult, error) {
	now := time.Now()
	var result *CancelResult
	var notifySub *models.Subscription

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if locked.CanceledAt != nil {
			// No billing-state change, but the attempt itself is recorded.
			if err := s.appendAudit(ctx, tx, types.AuditActionCancelled,
				"duplicate cancellation attempt ignored", locked, locked,
				datatypes.JSONMap{"duplicate": true, "reason": reason}); err != nil {
				return err
			}
			result = &CancelResult{
				AlreadyCancelled: true,
				CanceledAt:       locked.CanceledAt,
				EndsAt:           locked.EndsAt,
				Message:          "subscription was already cancelled",
			}
			return nil
		}

		before := snapshot(locked)
		ends := now.AddDate(0, 0, s.cfg.Billing.GraceDays)
		locked.CanceledAt = &now
		locked.EndsAt = &ends

		if err := tx.WithContext(ctx).Save(locked).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		msg := fmt.Sprintf("cancelled, deliveries end %s", ends.Format("2006-01-02"))
		if err := s.appendAudit(ctx, tx, types.AuditActionCancelled, msg, before, locked,
			datatypes.JSONMap{"reason": reason, "immediate": immediate}); err != nil {
			return err
		}

		notifySub = snapshot(locked)
		result = &CancelResult{CanceledAt: &now, EndsAt: &ends, Message: msg}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notifySub != nil {
		// Notification failure must not roll back the cancellation.
		go s.notifier.NotifyCancelled(context.WithoutCancel(ctx), notifySub, reason, immediate)
	}
	return result, nil
}

// Reactivate clears the cancellation and restarts billing one reactivation
// period from now. The cadence is a fixed policy default, deliberately
// independent of the subscription's own billing period.
func (s *Service) Reactivate(ctx context.Context, id string) (*models.Subscription, error) {
	now := time.Now()
	var reactivated *models.Subscription

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if locked.CanceledAt == nil {
			return ErrNotCancelled
		}

		before := snapshot(locked)
		priorCanceledAt := locked.CanceledAt

		next := now.AddDate(0, s.cfg.Billing.ReactivationMonths, 0)
		locked.CanceledAt = nil
		locked.EndsAt = nil
		locked.NextBillingAt = &next

		if err := tx.WithContext(ctx).Save(locked).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		if err := s.appendAudit(ctx, tx, types.AuditActionReactivated,
			fmt.Sprintf("reactivated, next billing %s", next.Format("2006-01-02")),
			before, locked,
			datatypes.JSONMap{"prior_canceled_at": priorCanceledAt}); err != nil {
			return err
		}

		reactivated = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription reactivated", "subscription_id", id)
	return reactivated, nil
}
