package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HistogramBuckets = []float64{
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000,
	3000, 5000, 7500, 10000, 15000,
	30000, 60000,
}

func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start).Milliseconds())
}

// Business metrics. Renewal outcomes and CSV import row counts are the two
// flows operators alarm on.
var (
	RenewalTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "renewal_total",
		Help: "Subscription renewal attempts, partitioned by outcome.",
	}, []string{"outcome"})

	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_import_rows_total",
		Help: "Bank CSV rows processed, partitioned by result (imported/skipped).",
	}, []string{"result"})

	GatewayChargeDur = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_charge_dur_ms",
		Help:    "Payment gateway charge latency in milliseconds.",
		Buckets: HistogramBuckets,
	})
)
