package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fernhill/farmbox/pkg/config"
)

// ChargeRequest identifies who is charged and how much. CustomerRef is the
// gateway-side customer id stored against the subscription's customer.
type ChargeRequest struct {
	SubscriptionID string
	CustomerRef    string
	Amount         decimal.Decimal
	Description    string
}

// ChargeResult is the structured outcome of a charge attempt. A declined
// charge is Success=false with Error set; it is not a Go error, since the
// caller decides whether to retry, notify or escalate.
type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Gateway executes charges against the payment provider. Implementations
// must be safe to call once per renewal attempt; the engine never retries
// internally.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// NewGateway selects the Stripe gateway when an API key is configured and
// the log-only gateway otherwise (dev environments, tests).
func NewGateway(cfg *config.Config, log *zap.SugaredLogger) Gateway {
	if cfg.Stripe.APIKey != "" {
		return NewStripeGateway(cfg, log)
	}
	log.Warnw("no stripe api key configured, using log-only payment gateway")
	return NewLogGateway(log)
}

var Module = fx.Options(
	fx.Provide(NewGateway),
)
