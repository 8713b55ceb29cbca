package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config contains all runtime configuration loaded from environment variables.
//
// Component settings (cookie policy, session store, gateway, audit) are loaded
// by their own packages; this struct only carries process-level wiring.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string
	Version   string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	RedisURL string

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool
}

// LoadConfig loads Config from environment variables with defaults.
// A .env.local file is applied first when present; real env vars win.
func LoadConfig() Config {
	loadEnvFile()

	return Config{
		HTTPAddr:  EnvString("ECHO_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("ECHO_LOG_LEVEL", "info"),
		LogFormat: EnvString("ECHO_LOG_FORMAT", "json"),
		Version:   EnvString("ECHO_VERSION", "dev"),

		ReadHeaderTimeout: EnvDuration("ECHO_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("ECHO_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("ECHO_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("ECHO_HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   EnvDuration("ECHO_HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

		MaxHeaderBytes: EnvInt("ECHO_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("ECHO_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("ECHO_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("ECHO_DB_MIN_CONNS", 0),

		RedisURL: EnvString("ECHO_REDIS_URL", ""),

		ReadinessRequireDB: EnvBool("ECHO_READINESS_REQUIRE_DB", false),
	}
}

// loadEnvFile looks for .env.local in the working directory, then its parent.
func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}
