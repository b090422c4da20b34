// Package metrics collects and exposes Prometheus metrics for the auth
// subsystem.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcome labels.
const (
	RefreshOutcomeRotated  = "rotated"
	RefreshOutcomeInvalid  = "invalid"
	RefreshOutcomeNotFound = "not_found"
	RefreshOutcomeExpired  = "expired"
	RefreshOutcomeError    = "error"
)

// Recorder is the slice of the collector the handlers depend on.
type Recorder interface {
	RecordLogin(success bool)
	RecordRefresh(outcome string)
	RecordAuthRejection()
}

// Collector gathers auth lifecycle counters.
type Collector struct {
	logins         *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	authRejections prometheus.Counter
	httpStatus     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fps_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fps_token_refreshes_total",
			Help: "Token rotation attempts by outcome.",
		}, []string{"outcome"}),
		authRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fps_auth_rejections_total",
			Help: "Requests rejected with the uniform 401.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fps_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.logins,
		c.refreshes,
		c.authRejections,
		c.httpStatus,
	)

	return c
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordRefresh counts a rotation attempt with its outcome label.
func (c *Collector) RecordRefresh(outcome string) {
	c.refreshes.WithLabelValues(outcome).Inc()
}

// RecordAuthRejection counts a uniform 401.
func (c *Collector) RecordAuthRejection() {
	c.authRejections.Inc()
}

// RecordHTTPStatus counts a response by status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
