package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	rows  []Row
	err   error
	calls int
}

func (f *fakeRunner) Run(context.Context) ([]Row, error) {
	f.calls++
	return f.rows, f.err
}

func newTestHandler(t *testing.T, r Runner) *Handler {
	t.Helper()

	h, err := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), r, "s3cret")
	require.NoError(t, err)
	return h
}

func post(h http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/audit", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_OK(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{rows: []Row{
		{CheckName: "rls_enabled", Status: "pass", Severity: "high"},
		{CheckName: "weak_password_policy", Status: "warn", Severity: "medium", Details: json.RawMessage(`{"min_length":6}`)},
	}}
	rr := post(newTestHandler(t, runner), "Bearer s3cret")

	require.Equal(t, http.StatusOK, rr.Code)

	var rep Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, Summary{Total: 2, Passed: 1, Warnings: 1, Status: StatusWarning}, rep.Summary)
	require.Len(t, rep.Results, 2)
	assert.Equal(t, "weak_password_policy", rep.Results[1].CheckName)
	assert.JSONEq(t, `{"min_length":6}`, string(rep.Results[1].Details))
}

func TestHandler_Unauthorized(t *testing.T) {
	t.Parallel()

	for _, auth := range []string{"", "s3cret", "Bearer wrong", "Basic s3cret", "Bearer s3cret-longer"} {
		runner := &fakeRunner{}
		rr := post(newTestHandler(t, runner), auth)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, auth)
		assert.Zero(t, runner.calls, "runner must not be invoked for %q", auth)
	}
}

func TestHandler_ProcedureFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("function run_security_audit() does not exist")}
	rr := post(newTestHandler(t, runner), "Bearer s3cret")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "does not exist")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, &fakeRunner{})
	req := httptest.NewRequest(http.MethodGet, "/audit", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestNewHandler_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewHandler(nil, nil, "x")
	assert.Error(t, err)

	_, err = NewHandler(nil, &fakeRunner{}, "")
	assert.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ECHO_AUDIT_PROCEDURE", "")
	t.Setenv("ECHO_AUDIT_TOKEN", "")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, DefaultProcedure, cfg.Procedure)
	assert.False(t, cfg.Enabled())

	t.Setenv("ECHO_AUDIT_PROCEDURE", "ops.audit")
	t.Setenv("ECHO_AUDIT_TOKEN", " tok ")
	cfg = LoadConfigFromEnv()
	assert.Equal(t, "ops.audit", cfg.Procedure)
	assert.Equal(t, "tok", cfg.Token)
	assert.True(t, cfg.Enabled())
}

func TestAuditQuery(t *testing.T) {
	t.Parallel()

	q, err := auditQuery("")
	require.NoError(t, err)
	assert.Equal(t, `SELECT check_name, status, severity, details FROM "run_security_audit"()`, q)

	q, err = auditQuery("ops.audit")
	require.NoError(t, err)
	assert.Equal(t, `SELECT check_name, status, severity, details FROM "ops"."audit"()`, q)

	q, err = auditQuery(`x"; DROP TABLE s; --`)
	require.NoError(t, err)
	assert.Equal(t, `SELECT check_name, status, severity, details FROM "x""; DROP TABLE s; --"()`, q)

	for _, bad := range []string{"a.b.c", ".audit", "ops."} {
		_, err := auditQuery(bad)
		assert.ErrorIs(t, err, ErrConfig, bad)
	}

	_, err = NewPostgresRunner(nil, "run_security_audit")
	assert.ErrorIs(t, err, ErrConfig)
}
