package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// failureThrottle is a per-client sliding-window counter of rejected tokens.
// Clients over the limit get 429 before the store is queried.
type failureThrottle struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

// sweepAt bounds the map: past this many keys, idle clients are dropped on write.
const sweepAt = 10_000

// newFailureThrottle returns nil (disabled) when limit is not positive.
func newFailureThrottle(limit int, window time.Duration) *failureThrottle {
	if limit <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &failureThrottle{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// blocked reports whether key is over the limit, and for how long.
func (t *failureThrottle) blocked(key string) (bool, time.Duration) {
	if t == nil {
		return false, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	events := t.prune(key, now)
	if len(events) < t.limit {
		return false, 0
	}
	return true, events[0].Add(t.window).Sub(now)
}

// record counts one rejected attempt for key.
func (t *failureThrottle) record(key string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if len(t.hits) >= sweepAt {
		for k := range t.hits {
			t.prune(k, now)
		}
	}
	t.hits[key] = append(t.prune(key, now), now)
}

// prune drops events outside the window. The caller holds mu.
func (t *failureThrottle) prune(key string, now time.Time) []time.Time {
	events := t.hits[key]
	cut := now.Add(-t.window)

	dst := events[:0]
	for _, ts := range events {
		if ts.After(cut) {
			dst = append(dst, ts)
		}
	}
	if len(dst) == 0 {
		delete(t.hits, key)
		return nil
	}
	t.hits[key] = dst
	return dst
}

// clientKey is the peer address without port. Forwarding headers are not trusted.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int64(retryAfter.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
	writeError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
}
