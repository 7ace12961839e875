// Package metrics exposes Prometheus counters for the connect flow and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var _ Recorder = (*Metrics)(nil)

// Recorder is what use cases and middleware record into.
type Recorder interface {
	RecordExchange(provider, outcome string)
	RecordStatus(provider string, activeCount int64)
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}

type Metrics struct {
	OAuthExchangesTotal *prometheus.CounterVec
	StatusChecksTotal   *prometheus.CounterVec
	ActiveGrants        *prometheus.GaugeVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every collector on reg. Passing a fresh registry keeps tests isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OAuthExchangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulse_oauth_exchanges_total",
				Help: "Total number of OAuth code exchanges",
			},
			[]string{"provider", "outcome"}, // success, provider_rejected, malformed_response, ...
		),
		StatusChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulse_oauth_status_checks_total",
				Help: "Total number of connection status checks",
			},
			[]string{"provider", "connected"},
		),
		ActiveGrants: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pulse_oauth_active_grants",
				Help: "Non-expired grants seen by the last status or health check",
			},
			[]string{"provider"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulse_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulse_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(
		m.OAuthExchangesTotal,
		m.StatusChecksTotal,
		m.ActiveGrants,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

func (m *Metrics) RecordExchange(provider, outcome string) {
	m.OAuthExchangesTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordStatus counts the check and publishes the active grant count.
func (m *Metrics) RecordStatus(provider string, activeCount int64) {
	m.StatusChecksTotal.WithLabelValues(provider, strconv.FormatBool(activeCount > 0)).Inc()
	m.ActiveGrants.WithLabelValues(provider).Set(float64(activeCount))
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// HTTPMiddleware records request count and latency by route pattern.
func HTTPMiddleware(r Recorder) gin.HandlerFunc {
	if _, ok := r.(*Noop); ok {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		r.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
