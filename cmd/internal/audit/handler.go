package audit

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"echo/cmd/ids"
)

// Handler serves POST /audit.
type Handler struct {
	log    *slog.Logger
	runner Runner
	token  []byte
}

// NewHandler constructs a Handler. token must be non-empty.
func NewHandler(log *slog.Logger, runner Runner, token string) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if runner == nil {
		return nil, errors.New("audit: nil runner")
	}
	if token == "" {
		return nil, errors.New("audit: empty token")
	}
	return &Handler{log: log, runner: runner, token: []byte(token)}, nil
}

// Register mounts the handler at /audit.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.Handle("/audit", h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	reqID := ids.RequestID(r.Context())
	rows, err := h.runner.Run(r.Context())
	if err != nil {
		h.log.Error("audit.run.fail", "request_id", reqID, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	rep := BuildReport(rows)
	h.log.Info("audit.run.ok",
		"request_id", reqID,
		"total", rep.Summary.Total,
		"failed", rep.Summary.Failed,
		"warnings", rep.Summary.Warnings,
		"status", rep.Summary.Status,
	)
	writeJSON(w, http.StatusOK, rep)
}

func (h *Handler) authorized(r *http.Request) bool {
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), h.token) == 1
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: msg}})
}
