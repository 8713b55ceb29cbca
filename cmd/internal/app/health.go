package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"
)

// healthCheck is one named liveness check.
type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"responseTime"`
	Error        string `json:"error,omitempty"`
}

type uptimeResponse struct {
	Status       string                 `json:"status"`
	ResponseTime int64                  `json:"responseTime"`
	Checks       map[string]checkResult `json:"checks"`
	Uptime       int64                  `json:"uptime"`
	Version      string                 `json:"version"`
}

// uptimeHandler serves GET /uptime: every check runs concurrently and the
// overall status is healthy only if all of them pass.
type uptimeHandler struct {
	log     Logger
	checks  []healthCheck
	version string
	started time.Time
	timeout time.Duration
	now     func() time.Time
}

func newUptimeHandler(log Logger, version string, started time.Time, checks []healthCheck) *uptimeHandler {
	return &uptimeHandler{
		log:     log,
		checks:  checks,
		version: version,
		started: started,
		timeout: 2 * time.Second,
		now:     time.Now,
	}
}

func (h *uptimeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := h.now()
	results := h.run(r.Context())

	resp := uptimeResponse{
		Status:  healthStatusHealthy,
		Checks:  make(map[string]checkResult, len(results)),
		Uptime:  int64(h.now().Sub(h.started).Seconds()),
		Version: h.version,
	}
	for i, res := range results {
		resp.Checks[h.checks[i].name] = res
		if res.Status != healthStatusHealthy {
			resp.Status = healthStatusUnhealthy
		}
	}
	resp.ResponseTime = h.now().Sub(start).Milliseconds()

	status := http.StatusOK
	if resp.Status != healthStatusHealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// run executes all checks in parallel. A failing check never cancels its siblings.
func (h *uptimeHandler) run(ctx context.Context) []checkResult {
	results := make([]checkResult, len(h.checks))

	var g errgroup.Group
	for i, p := range h.checks {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()

			began := h.now()
			err := p.check(pctx)
			res := checkResult{
				Status:       healthStatusHealthy,
				ResponseTime: h.now().Sub(began).Milliseconds(),
			}
			if err != nil {
				res.Status = healthStatusUnhealthy
				res.Error = checkError(err)
				h.log.Warn("uptime.check.fail", "check", p.name, "err", err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// checkError keeps dependency details (hosts, credentials in DSNs) out of the public body.
func checkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "unavailable"
}
