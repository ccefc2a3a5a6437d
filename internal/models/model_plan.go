package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fernhill/farmbox/pkg/types"
)

// Plan is a named recurring veg-box offering. Changing a subscription's plan
// copies the plan values onto the subscription; the Plan row itself is only
// mutated through administrative edits.
type Plan struct {
	ID          string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name        string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	// Price is currency-agnostic; the gateway config decides the currency.
	Price             decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	BoxSize           string          `gorm:"column:box_size;type:varchar(32)" json:"box_size"`
	DeliveryFrequency string          `gorm:"column:delivery_frequency;type:varchar(32)" json:"delivery_frequency"`
	// InvoicePeriod/InvoiceInterval define the billing cadence, e.g. 1 month.
	InvoicePeriod   int                 `gorm:"column:invoice_period;not null;default:1" json:"invoice_period"`
	InvoiceInterval types.BillingPeriod `gorm:"column:invoice_interval;type:varchar(16);not null" json:"invoice_interval"`
	Active          bool                `gorm:"column:active;not null;default:true" json:"active"`
	SortOrder       int                 `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plan"
}
