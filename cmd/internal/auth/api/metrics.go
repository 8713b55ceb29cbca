package api

import "github.com/prometheus/client_golang/prometheus"

// Gateway request results, used as the "outcome" metric label.
const (
	resultSuccess          = "success"
	resultInvalid          = "invalid"
	resultBadRequest       = "bad_request"
	resultMethodNotAllowed = "method_not_allowed"
	resultPreflight        = "preflight"
	resultOriginDenied     = "origin_denied"
	resultRateLimited      = "rate_limited"
	resultStoreUnavailable = "store_unavailable"
	resultInternalError    = "internal_error"
)

// Metrics holds gateway collectors.
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics creates and registers gateway collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "echo",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Session gateway requests by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests)
	}
	return m
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}
