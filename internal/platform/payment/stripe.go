package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/logctx"
	"github.com/fernhill/farmbox/pkg/metrics"
)

// StripeGateway charges the customer's default payment method off-session
// via a confirmed PaymentIntent.
type StripeGateway struct {
	api      *client.API
	currency string
	log      *zap.SugaredLogger
}

func NewStripeGateway(cfg *config.Config, log *zap.SugaredLogger) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.Stripe.APIKey, nil)
	return &StripeGateway{api: api, currency: cfg.Stripe.Currency, log: log}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.CustomerRef == "" {
		return &ChargeResult{Success: false, Error: "subscription has no gateway customer reference"}, nil
	}

	start := time.Now()
	params := &stripe.PaymentIntentParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(minorUnits(req.Amount)),
		Currency:    stripe.String(g.currency),
		Customer:    stripe.String(req.CustomerRef),
		Confirm:     stripe.Bool(true),
		OffSession:  stripe.Bool(true),
		Description: stripe.String(req.Description),
	}
	params.AddMetadata("subscription_id", req.SubscriptionID)

	pi, err := g.api.PaymentIntents.New(params)
	metrics.GatewayChargeDur.Observe(metrics.MillisecondsSince(start))
	if err != nil {
		// Declines come back as *stripe.Error; report them as a structured
		// failure, not a transport error.
		var sErr *stripe.Error
		if errors.As(err, &sErr) {
			logctx.FromCtx(ctx, g.log).Warnw("stripe charge declined",
				"subscription_id", req.SubscriptionID, "code", sErr.Code, "msg", sErr.Msg)
			return &ChargeResult{Success: false, Error: string(sErr.Code) + ": " + sErr.Msg}, nil
		}
		return nil, err
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &ChargeResult{Success: false, TransactionID: pi.ID, Error: "payment intent status: " + string(pi.Status)}, nil
	}
	return &ChargeResult{Success: true, TransactionID: pi.ID}, nil
}

// minorUnits converts a decimal major-unit amount to the gateway's integer
// minor units (pence).
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
