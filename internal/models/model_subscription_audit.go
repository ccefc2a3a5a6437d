package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fernhill/farmbox/pkg/types"
)

// SubscriptionAudit is the append-only trail of subscription state changes.
// Rows are written in the same DB transaction as the state change itself, so
// the trail can never disagree with the subscription row. Never updated or
// deleted after creation.
type SubscriptionAudit struct {
	ID             string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string `gorm:"column:subscription_id;type:uuid;not null;index:idx_subscription_id_created_at,priority:1" json:"subscription_id"`
	// Action is the change kind (renewed, cancelled, plan_changed, ...).
	Action  types.AuditAction `gorm:"column:action;type:varchar(32);not null" json:"action"`
	Message string            `gorm:"column:message;type:text" json:"message"`
	// Before/After snapshot the subscription around the change.
	Before datatypes.JSONType[*Subscription] `gorm:"column:before;type:jsonb;default:'null'" json:"before"`
	After  datatypes.JSONType[*Subscription] `gorm:"column:after;type:jsonb;default:'null'" json:"after"`
	// Extra carries change context: gateway transaction id, proration
	// amount, duplicate-attempt flags.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time         `gorm:"index:idx_subscription_id_created_at,priority:2" json:"created_at"`
}

func (SubscriptionAudit) TableName() string {
	return "subscription_audit"
}
