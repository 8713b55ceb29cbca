package audit

import (
	"os"
	"strings"
)

// DefaultProcedure is the stored function invoked when none is configured.
const DefaultProcedure = "run_security_audit"

// Config controls the audit trigger.
type Config struct {
	// Procedure is the (optionally schema-qualified) function name.
	Procedure string
	// Token is the bearer secret required on POST /audit. Empty disables the route.
	Token string
}

// Enabled reports whether the audit route should be mounted.
func (c Config) Enabled() bool { return c.Token != "" }

// LoadConfigFromEnv reads ECHO_AUDIT_PROCEDURE and ECHO_AUDIT_TOKEN.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Procedure: strings.TrimSpace(os.Getenv("ECHO_AUDIT_PROCEDURE")),
		Token:     strings.TrimSpace(os.Getenv("ECHO_AUDIT_TOKEN")),
	}
	if cfg.Procedure == "" {
		cfg.Procedure = DefaultProcedure
	}
	return cfg
}
