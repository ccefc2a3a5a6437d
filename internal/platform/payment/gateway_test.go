package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMinorUnits(t *testing.T) {
	require.Equal(t, int64(1850), minorUnits(decimal.NewFromFloat(18.5)))
	require.Equal(t, int64(100), minorUnits(decimal.NewFromInt(1)))
	require.Equal(t, int64(33), minorUnits(decimal.NewFromFloat(0.33)))
	require.Equal(t, int64(0), minorUnits(decimal.Zero))
}

func TestLogGatewayCharge(t *testing.T) {
	g := NewLogGateway(zap.NewNop().Sugar())

	res, err := g.Charge(context.Background(), ChargeRequest{
		SubscriptionID: "sub-1",
		Amount:         decimal.NewFromFloat(18.5),
		Description:    "weekly veg box",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, strings.HasPrefix(res.TransactionID, "log-"))
}

func TestStripeChargeRejectsMissingCustomerRef(t *testing.T) {
	g := &StripeGateway{currency: "gbp", log: zap.NewNop().Sugar()}

	res, err := g.Charge(context.Background(), ChargeRequest{
		SubscriptionID: "sub-1",
		Amount:         decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
}
