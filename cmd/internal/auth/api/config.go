package api

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls gateway HTTP behavior.
type Config struct {
	// MaxBodyBytes bounds the request body.
	MaxBodyBytes int64

	// AllowedOrigins restricts which Origins are echoed back. Empty means any
	// Origin is echoed. Entries may end in ":*" to allow any port.
	AllowedOrigins []string

	// CORSMaxAge is how long browsers may cache a preflight result.
	CORSMaxAge time.Duration

	// FailureLimit rejected tokens per client within FailureWindow trigger 429.
	// Zero (the default) disables the throttle. Clients are keyed on the peer
	// address, so enable it only when callers do not share a proxy.
	FailureLimit  int
	FailureWindow time.Duration
}

// DefaultConfig returns gateway defaults.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:  16 << 10,
		CORSMaxAge:    10 * time.Minute,
		FailureWindow: time.Minute,
	}
}

// LoadConfigFromEnv loads gateway config from environment variables with safe defaults.
func LoadConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		MaxBodyBytes:   envInt64("ECHO_GATEWAY_MAX_BODY_BYTES", def.MaxBodyBytes),
		AllowedOrigins: envList("ECHO_CORS_ALLOWED_ORIGINS"),
		CORSMaxAge:     envDuration("ECHO_CORS_MAX_AGE", def.CORSMaxAge),
		FailureLimit:   envNonNegInt("ECHO_GATEWAY_FAILURE_LIMIT", def.FailureLimit),
		FailureWindow:  envDuration("ECHO_GATEWAY_FAILURE_WINDOW", def.FailureWindow),
	}
}

func envNonNegInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
