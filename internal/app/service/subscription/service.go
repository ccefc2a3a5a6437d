package subscription

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/internal/platform/notify"
	"github.com/fernhill/farmbox/internal/platform/payment"
	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/tool"
	"github.com/fernhill/farmbox/pkg/types"
)

var (
	// ErrConflict is returned when a concurrent writer advanced the same
	// subscription first. Callers should reload and retry.
	ErrConflict = errors.New("subscription modified concurrently, retry")
	// ErrSamePlan rejects a plan change onto the already-active plan.
	ErrSamePlan = errors.New("subscription is already on this plan")
	// ErrNotBillable rejects a renewal of a cancelled or paused subscription.
	ErrNotBillable = errors.New("subscription is not billable in its current status")
	// ErrRenewalSkipped rejects a renewal while skip_auto_renewal is set.
	ErrRenewalSkipped = errors.New("subscription has auto-renewal skipped, clear the flag first")
	// ErrNotCancelled rejects reactivation of a subscription that is not cancelled.
	ErrNotCancelled = errors.New("subscription is not cancelled")
)

type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	log      *zap.SugaredLogger
	gateway  payment.Gateway
	notifier notify.Notifier
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, gw payment.Gateway, n notify.Notifier) *Service {
	return &Service{cfg: cfg, db: db, log: log, gateway: gw, notifier: n}
}

// Get loads a subscription by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscription %s: %w", id, err)
	}
	return &sub, nil
}

// lockForUpdate loads a subscription inside tx with a row lock so that
// concurrent mutations of the same subscription serialize on the row.
func (s *Service) lockForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to lock subscription %s: %w", id, err)
	}
	return &sub, nil
}

// appendAudit writes an audit row in the caller's transaction. Before/after
// snapshots are value copies taken at call time.
func (s *Service) appendAudit(ctx context.Context, tx *gorm.DB, action types.AuditAction, message string, before, after *models.Subscription, extra datatypes.JSONMap) error {
	var subID string
	if after != nil {
		subID = after.ID
	} else if before != nil {
		subID = before.ID
	}
	if extra == nil {
		extra = datatypes.JSONMap{}
	}
	entry := &models.SubscriptionAudit{
		ID:             tool.GenerateUUIDV7(),
		SubscriptionID: subID,
		Action:         action,
		Message:        message,
		Before:         datatypes.NewJSONType(snapshot(before)),
		After:          datatypes.NewJSONType(snapshot(after)),
		Extra:          extra,
	}
	if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func snapshot(sub *models.Subscription) *models.Subscription {
	if sub == nil {
		return nil
	}
	cp := *sub
	return &cp
}

// Audits returns the append-only audit trail for a subscription, ordered by
// creation time ascending.
func (s *Service) Audits(ctx context.Context, subscriptionID string) ([]*models.SubscriptionAudit, error) {
	var entries []*models.SubscriptionAudit
	if err := s.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return entries, nil
}
