package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultMetricPath = "/metrics"

// URLLabelMappingFn controls the cardinality of the "url" label: map
// parameterized routes to their template (gin's FullPath) instead of one
// series per concrete URL.
type URLLabelMappingFn func(c *gin.Context) string

// Prometheus wraps the standard HTTP request metrics and optionally serves
// them on a separate listen address so /metrics stays out of the API access
// log.
type Prometheus struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec

	listenAddress string
	metricsPath   string
	urlLabelFn    URLLabelMappingFn
	log           *zap.SugaredLogger
}

type Options struct {
	Subsystem     string
	MetricsPath   string
	ListenAddress string
	URLLabelFn    URLLabelMappingFn
	Logger        *zap.SugaredLogger
}

func NewPrometheus(opts Options) *Prometheus {
	p := &Prometheus{
		metricsPath:   opts.MetricsPath,
		listenAddress: opts.ListenAddress,
		urlLabelFn:    opts.URLLabelFn,
		log:           opts.Logger,
	}
	if p.metricsPath == "" {
		p.metricsPath = defaultMetricPath
	}
	if p.urlLabelFn == nil {
		p.urlLabelFn = func(c *gin.Context) string { return c.Request.URL.Path }
	}

	p.reqCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: opts.Subsystem,
		Name:      "req_total",
		Help:      "HTTP requests processed, partitioned by status code, method and url.",
	}, []string{"code", "method", "url"})
	p.reqDur = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: opts.Subsystem,
		Name:      "req_dur_ms",
		Help:      "HTTP request latencies in milliseconds.",
		Buckets:   HistogramBuckets,
	}, []string{"code", "method", "url"})

	for _, c := range []prometheus.Collector{p.reqCnt, p.reqDur} {
		if err := prometheus.Register(c); err != nil && p.log != nil {
			p.log.Errorf("prometheus register failed: %v", err)
		}
	}
	return p
}

// Use attaches the middleware to e and exposes /metrics, either on e itself
// or on the separate listen address when one was configured.
func (p *Prometheus) Use(e *gin.Engine) {
	e.Use(p.HandlerFunc())
	if p.listenAddress != "" {
		r := gin.New()
		r.GET(p.metricsPath, gin.WrapH(promhttp.Handler()))
		go func() {
			if err := r.Run(p.listenAddress); err != nil && p.log != nil {
				p.log.Errorf("metrics server error: %v", err)
			}
		}()
		return
	}
	e.GET(p.metricsPath, gin.WrapH(promhttp.Handler()))
}

func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		url := p.urlLabelFn(c)
		p.reqDur.WithLabelValues(status, c.Request.Method, url).Observe(MillisecondsSince(start))
		p.reqCnt.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
