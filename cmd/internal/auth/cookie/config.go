package cookie

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrConfig is returned for invalid cookie configuration.
var ErrConfig = errors.New("invalid cookie config")

// LoadConfigFromEnv loads the cookie policy from environment variables.
//
// Optional:
//   - ECHO_COOKIE_DOMAIN: parent domain to share the cookie with (absent = host-only)
//   - ECHO_COOKIE_SECURE: boolean, default true
//   - ECHO_COOKIE_SAMESITE: lax (default), strict, none; anything else is ErrConfig
//   - ECHO_COOKIE_MAX_AGE: Go duration, default 720h
//
// SameSite=None forces Secure; browsers drop insecure None cookies.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	domain, err := normalizeDomain(os.Getenv("ECHO_COOKIE_DOMAIN"))
	if err != nil {
		return Config{}, err
	}
	cfg.Domain = domain

	if v := strings.TrimSpace(os.Getenv("ECHO_COOKIE_SECURE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, ErrConfig
		}
		cfg.Insecure = !b
	}

	sameSite, err := parseSameSite(os.Getenv("ECHO_COOKIE_SAMESITE"))
	if err != nil {
		return Config{}, err
	}
	cfg.SameSite = sameSite

	if v := strings.TrimSpace(os.Getenv("ECHO_COOKIE_MAX_AGE")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < time.Second {
			return Config{}, ErrConfig
		}
		cfg.MaxAge = d
	}

	if cfg.SameSite == http.SameSiteNoneMode {
		cfg.Insecure = false
	}

	return cfg, nil
}

func parseSameSite(v string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrConfig
	}
}

// normalizeDomain trims and lowercases a configured domain and rejects values
// that could break out of the attribute.
func normalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return "", nil
	}
	if strings.ContainsAny(d, " \t\r\n;,=\"/:") {
		return "", ErrConfig
	}
	if strings.Trim(d, ".") == "" {
		return "", ErrConfig
	}
	return d, nil
}
