package api

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Request-ID"
)

// applyCORS sets the credentialed CORS headers every gateway response carries.
//
// The request Origin is echoed exactly; a wildcard is never used because
// browsers reject "*" on credentialed requests. It reports false when an
// allowlist is configured and the Origin is not on it, in which case no
// Allow-Origin header is written.
func (g *Gateway) applyCORS(w http.ResponseWriter, r *http.Request) bool {
	h := w.Header()
	h.Add("Vary", "Origin")

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin != "" && !originAllowed(g.cfg.AllowedOrigins, origin) {
		return false
	}
	if origin != "" {
		h.Set("Access-Control-Allow-Origin", origin)
	}
	h.Set("Access-Control-Allow-Credentials", "true")
	return true
}

func (g *Gateway) writePreflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Add("Vary", "Access-Control-Request-Method")
	h.Add("Vary", "Access-Control-Request-Headers")
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)

	allowHeaders := corsAllowHeaders
	if req := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers")); req != "" {
		allowHeaders = req
	}
	h.Set("Access-Control-Allow-Headers", allowHeaders)

	if secs := int64(g.cfg.CORSMaxAge.Seconds()); secs > 0 {
		h.Set("Access-Control-Max-Age", strconv.FormatInt(secs, 10))
	}
	w.WriteHeader(http.StatusNoContent)
}

// originAllowed reports whether origin passes the allowlist. An empty list allows all.
// An entry "scheme://host:*" matches any port on that scheme and host.
func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	origin = strings.TrimRight(origin, "/")
	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return true
		}
		if base, ok := strings.CutSuffix(a, ":*"); ok {
			rest, found := strings.CutPrefix(strings.ToLower(origin), strings.ToLower(base)+":")
			if found && rest != "" && isDigits(rest) {
				return true
			}
		}
	}
	return false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
