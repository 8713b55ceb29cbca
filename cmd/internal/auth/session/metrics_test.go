package session

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_ObservesResults(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)

	good := &fakeStore{valid: map[string]bool{"h1": true}}
	st := Instrument(good, "memory", m)

	ctx := context.Background()
	_, _ = st.ValidateSession(ctx, "h1")
	_, _ = st.ValidateSession(ctx, "h2")

	bad := Instrument(&fakeStore{err: errors.New("down")}, "memory", m)
	_, _ = bad.ValidateSession(ctx, "h1")

	n, err := testutil.GatherAndCount(reg, "echo_session_store_lookup_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "expected one series per result label")
}

func TestInstrument_NilMetricsPassthrough(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	assert.Same(t, Store(st), Instrument(st, "memory", nil))
}

func TestInstrument_PingForwarding(t *testing.T) {
	t.Parallel()

	wrapped := Instrument(NewMemoryStore(), "memory", NewStoreMetrics(nil))
	p, ok := wrapped.(Pinger)
	require.True(t, ok)
	assert.NoError(t, p.Ping(context.Background()))
}

type failingPingStore struct{ fakeStore }

func (*failingPingStore) Ping(context.Context) error { return errors.New("unreachable") }

func TestInstrument_PingOnlyWhenWrappedStorePings(t *testing.T) {
	t.Parallel()

	m := NewStoreMetrics(nil)

	_, ok := Instrument(&fakeStore{}, "rpc", m).(Pinger)
	assert.False(t, ok, "a store without Ping must not gain one")

	p, ok := Instrument(&failingPingStore{}, "rpc", m).(Pinger)
	require.True(t, ok)
	assert.EqualError(t, p.Ping(context.Background()), "unreachable")
}
