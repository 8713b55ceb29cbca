// Package api exposes the session gateway over HTTP: it verifies a presented
// session token and, on success, issues the echo_session cookie.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"echo/cmd/ids"
	"echo/cmd/internal/auth/cookie"
	"echo/cmd/internal/auth/session"
)

// Gateway is the session-cookie issuance endpoint.
//
//	OPTIONS        -> 204 preflight
//	POST {token}   -> 200 + Set-Cookie | 400 | 401 | 429 | 500
//	anything else  -> 405
type Gateway struct {
	log       *slog.Logger
	cfg       Config
	cookies   cookie.Config
	validator *session.Validator
	metrics   *Metrics
	throttle  *failureThrottle
}

// NewGateway constructs a Gateway. metrics may be nil.
func NewGateway(log *slog.Logger, cfg Config, cookies cookie.Config, validator *session.Validator, metrics *Metrics) (*Gateway, error) {
	if log == nil {
		log = slog.Default()
	}
	if validator == nil {
		return nil, errors.New("gateway: nil validator")
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	return &Gateway{
		log:       log,
		cfg:       cfg,
		cookies:   cookies,
		validator: validator,
		metrics:   metrics,
		throttle:  newFailureThrottle(cfg.FailureLimit, cfg.FailureWindow),
	}, nil
}

// Register wires the gateway onto mux at the root and at /auth/session.
func (g *Gateway) Register(mux *http.ServeMux) {
	if g == nil || mux == nil {
		return
	}
	mux.Handle("/{$}", g)
	mux.Handle("/auth/session", g)
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			g.log.Error("gateway.panic", "panic", rec, "request_id", ids.RequestID(r.Context()))
			g.metrics.observe(resultInternalError)
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		}
	}()

	if !g.applyCORS(w, r) {
		g.metrics.observe(resultOriginDenied)
		writeError(w, http.StatusForbidden, "origin_not_allowed", "origin not allowed")
		return
	}

	switch r.Method {
	case http.MethodOptions:
		g.metrics.observe(resultPreflight)
		g.writePreflight(w, r)
		return
	case http.MethodPost:
	default:
		g.metrics.observe(resultMethodNotAllowed)
		w.Header().Set("Allow", corsAllowMethods)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req sessionRequest
	if err := decodeJSON(w, r, g.cfg.MaxBodyBytes, &req); err != nil {
		g.metrics.observe(resultBadRequest)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	tok, ok := req.Token.(string)
	if !ok || tok == "" {
		g.metrics.observe(resultBadRequest)
		writeError(w, http.StatusBadRequest, "invalid_request", "token is required and must be a non-empty string")
		return
	}
	if !cookie.ValidValue(tok) {
		g.metrics.observe(resultBadRequest)
		writeError(w, http.StatusBadRequest, "invalid_request", "token contains unsupported characters")
		return
	}

	ctx := r.Context()
	reqID := ids.RequestID(ctx)
	client := clientKey(r)

	if blocked, retry := g.throttle.blocked(client); blocked {
		g.metrics.observe(resultRateLimited)
		g.log.Warn("gateway.client.throttled", "request_id", reqID, "client", client)
		writeRateLimited(w, retry)
		return
	}

	outcome, err := g.validator.ValidateValue(ctx, req.Token)
	switch outcome {
	case session.OutcomeValid:
		w.Header().Add("Set-Cookie", cookie.Build(tok, g.cookies).String())
		g.metrics.observe(resultSuccess)
		g.log.Info("gateway.session.issued", "request_id", reqID, "cookie_domain", g.cookies.Domain)
		writeJSON(w, http.StatusOK, successResponse{Success: true})

	case session.OutcomeInvalid:
		g.metrics.observe(resultInvalid)
		g.throttle.record(client)
		g.log.Info("gateway.session.invalid", "request_id", reqID)
		writeError(w, http.StatusUnauthorized, "invalid_session", "invalid session token")

	default:
		g.metrics.observe(resultStoreUnavailable)
		g.log.Error("gateway.store.unavailable", "request_id", reqID, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}
