package plans

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/tool"
	"github.com/fernhill/farmbox/pkg/types"
)

// Service manages the plan catalogue. Plans referenced by live subscriptions
// are only changed through these administrative edits; subscriptions carry
// their own copies of the plan values.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// List returns plans ordered for display. activeOnly hides retired plans.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	q := s.db.WithContext(ctx).Order("sort_order asc, name asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []*models.Plan
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Plan, error) {
	var p models.Plan
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return &p, nil
}

type CreateRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	BoxSize           string          `json:"box_size"`
	DeliveryFrequency string          `json:"delivery_frequency"`
	InvoicePeriod     int             `json:"invoice_period"`
	InvoiceInterval   string          `json:"invoice_interval"`
	SortOrder         int             `json:"sort_order"`
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Plan, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("plan price must not be negative")
	}
	interval, err := types.ParseBillingPeriod(req.InvoiceInterval)
	if err != nil {
		return nil, err
	}
	period := req.InvoicePeriod
	if period < 1 {
		period = 1
	}

	p := &models.Plan{
		ID:                tool.GenerateUUIDV7(),
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		BoxSize:           req.BoxSize,
		DeliveryFrequency: req.DeliveryFrequency,
		InvoicePeriod:     period,
		InvoiceInterval:   interval,
		Active:            true,
		SortOrder:         req.SortOrder,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return p, nil
}

type UpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
	SortOrder   *int             `json:"sort_order"`
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*models.Plan, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("plan price must not be negative")
		}
		p.Price = *req.Price
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.SortOrder != nil {
		p.SortOrder = *req.SortOrder
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return p, nil
}

// Module exposes the plan catalogue service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
