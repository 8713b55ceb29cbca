package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("ECHO_GATEWAY_MAX_BODY_BYTES", "")
	t.Setenv("ECHO_CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ECHO_CORS_MAX_AGE", "")
	t.Setenv("ECHO_GATEWAY_FAILURE_LIMIT", "")
	t.Setenv("ECHO_GATEWAY_FAILURE_WINDOW", "")

	cfg := LoadConfigFromEnv()
	assert.Zero(t, cfg.FailureLimit, "throttle is opt-in")
	assert.Equal(t, time.Minute, cfg.FailureWindow)
	assert.Equal(t, int64(16<<10), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.CORSMaxAge)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("ECHO_GATEWAY_MAX_BODY_BYTES", "2048")
	t.Setenv("ECHO_CORS_ALLOWED_ORIGINS", " https://app.example.com/ ,, http://127.0.0.1:* ")
	t.Setenv("ECHO_CORS_MAX_AGE", "90s")
	t.Setenv("ECHO_GATEWAY_FAILURE_LIMIT", "20")
	t.Setenv("ECHO_GATEWAY_FAILURE_WINDOW", "5m")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, 20, cfg.FailureLimit)
	assert.Equal(t, 5*time.Minute, cfg.FailureWindow)
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"https://app.example.com", "http://127.0.0.1:*"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.CORSMaxAge)
}

func TestLoadConfigFromEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("ECHO_GATEWAY_MAX_BODY_BYTES", "-1")
	t.Setenv("ECHO_CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ECHO_CORS_MAX_AGE", "whenever")
	t.Setenv("ECHO_GATEWAY_FAILURE_LIMIT", "many")
	t.Setenv("ECHO_GATEWAY_FAILURE_WINDOW", "")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, DefaultConfig().FailureLimit, cfg.FailureLimit)
	assert.Equal(t, DefaultConfig().MaxBodyBytes, cfg.MaxBodyBytes)
	assert.Equal(t, DefaultConfig().CORSMaxAge, cfg.CORSMaxAge)
}
