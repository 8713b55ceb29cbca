package session

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics holds store lookup collectors.
type StoreMetrics struct {
	lookups *prometheus.HistogramVec
}

// NewStoreMetrics creates and registers store collectors on reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		lookups: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "echo",
			Subsystem: "session_store",
			Name:      "lookup_seconds",
			Help:      "Latency of session store lookups by store kind and result.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"store", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.lookups)
	}
	return m
}

// Instrument wraps store so every lookup is observed under the given store label.
// The result implements Pinger only if store does. A nil m returns store unchanged.
func Instrument(store Store, kind string, m *StoreMetrics) Store {
	if m == nil || store == nil {
		return store
	}
	base := &instrumentedStore{next: store, kind: kind, m: m}
	if p, ok := store.(Pinger); ok {
		return &instrumentedPingStore{instrumentedStore: base, pinger: p}
	}
	return base
}

type instrumentedStore struct {
	next Store
	kind string
	m    *StoreMetrics
}

func (s *instrumentedStore) ValidateSession(ctx context.Context, tokenHash string) (bool, error) {
	start := time.Now()
	ok, err := s.next.ValidateSession(ctx, tokenHash)

	result := "invalid"
	switch {
	case err != nil:
		result = "error"
	case ok:
		result = "valid"
	}
	s.m.lookups.WithLabelValues(s.kind, result).Observe(time.Since(start).Seconds())
	return ok, err
}

type instrumentedPingStore struct {
	*instrumentedStore
	pinger Pinger
}

func (s *instrumentedPingStore) Ping(ctx context.Context) error {
	return s.pinger.Ping(ctx)
}
