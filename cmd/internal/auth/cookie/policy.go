// Package cookie computes the security attributes of the Echo session cookie.
//
// Build is a pure function of the credential and an immutable Config; it never
// looks at the request. In particular the Domain attribute is only ever taken
// from configuration, never from the Origin or Host of the caller.
package cookie

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// Name is the session cookie name.
	Name = "echo_session"

	// Path is the fixed cookie path.
	Path = "/"

	// DefaultMaxAge is the cookie lifetime when not configured.
	DefaultMaxAge = 30 * 24 * time.Hour
)

// Config is the deployment-level cookie policy. It is read once at startup
// and shared read-only across requests.
type Config struct {
	// Domain widens the cookie scope to a parent domain. Empty means host-only.
	Domain string
	// Insecure drops the Secure attribute. The zero value is Secure; set this
	// only for local HTTP development.
	Insecure bool
	// SameSite is the same-site mode; zero value means Lax.
	SameSite http.SameSite
	// MaxAge is the cookie lifetime; <= 0 means DefaultMaxAge.
	MaxAge time.Duration
}

// DefaultConfig is the production policy: host-only, Secure, Lax, 30 days.
func DefaultConfig() Config {
	return Config{
		SameSite: http.SameSiteLaxMode,
		MaxAge:   DefaultMaxAge,
	}
}

// Attributes is the fully resolved cookie for one response.
type Attributes struct {
	Name     string
	Value    string
	Path     string
	MaxAge   int
	HTTPOnly bool
	SameSite http.SameSite
	Secure   bool
	Domain   string
}

// Build derives the session cookie for credential under cfg.
func Build(credential string, cfg Config) Attributes {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	sameSite := cfg.SameSite
	if sameSite == 0 || sameSite == http.SameSiteDefaultMode {
		sameSite = http.SameSiteLaxMode
	}

	return Attributes{
		Name:     Name,
		Value:    credential,
		Path:     Path,
		MaxAge:   int(maxAge / time.Second),
		HTTPOnly: true,
		SameSite: sameSite,
		Secure:   !cfg.Insecure || sameSite == http.SameSiteNoneMode,
		Domain:   strings.TrimSpace(cfg.Domain),
	}
}

// String serializes a as a Set-Cookie header value:
//
//	echo_session=<token>; Path=/; Max-Age=2592000; HttpOnly; SameSite=Lax[; Domain=<d>][; Secure]
func (a Attributes) String() string {
	var b strings.Builder
	b.Grow(len(a.Name) + len(a.Value) + len(a.Domain) + 80)

	b.WriteString(a.Name)
	b.WriteByte('=')
	b.WriteString(a.Value)
	b.WriteString("; Path=")
	b.WriteString(a.Path)
	b.WriteString("; Max-Age=")
	b.WriteString(strconv.Itoa(a.MaxAge))
	if a.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	if s := sameSiteString(a.SameSite); s != "" {
		b.WriteString("; SameSite=")
		b.WriteString(s)
	}
	if a.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(a.Domain)
	}
	if a.Secure {
		b.WriteString("; Secure")
	}
	return b.String()
}

func sameSiteString(s http.SameSite) string {
	switch s {
	case http.SameSiteStrictMode:
		return "Strict"
	case http.SameSiteNoneMode:
		return "None"
	case http.SameSiteLaxMode:
		return "Lax"
	default:
		return ""
	}
}

// MaxValueLen bounds the credential length accepted as a cookie value.
const MaxValueLen = 4096

// ValidValue reports whether v can be carried verbatim as a cookie value
// (RFC 6265 cookie-octets, non-empty, bounded length).
func ValidValue(v string) bool {
	if v == "" || len(v) > MaxValueLen {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c < 0x21 || c > 0x7e || c == '"' || c == ',' || c == ';' || c == '\\' {
			return false
		}
	}
	return true
}
