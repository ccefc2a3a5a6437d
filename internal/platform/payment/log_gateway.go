package payment

import (
	"context"

	"go.uber.org/zap"

	"github.com/fernhill/farmbox/pkg/logctx"
	"github.com/fernhill/farmbox/pkg/tool"
)

// LogGateway records charges without moving money. Used in dev and in any
// environment where no gateway key is configured.
type LogGateway struct {
	log *zap.SugaredLogger
}

func NewLogGateway(log *zap.SugaredLogger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	id := "log-" + tool.GenerateUUIDV7()
	logctx.FromCtx(ctx, g.log).Infow("log-only gateway charge",
		"subscription_id", req.SubscriptionID,
		"amount", req.Amount.StringFixed(2),
		"transaction_id", id,
	)
	return &ChargeResult{Success: true, TransactionID: id}, nil
}
