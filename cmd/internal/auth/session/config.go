package session

import (
	"os"
	"strings"
	"time"
)

// Kind names a session store backend.
type Kind string

const (
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindRPC      Kind = "rpc"
	KindMemory   Kind = "memory"
)

// Config selects and parameterizes the session store.
type Config struct {
	// Kind is the backend. When unset it is derived from which connection
	// settings are present (rpc, then postgres, then redis, then memory).
	Kind Kind

	// Procedure is the stored function (postgres) or RPC name (rpc).
	Procedure string

	// RedisPrefix namespaces session keys in Redis.
	RedisPrefix string

	// RPCURL and RPCKey configure the remote-procedure store.
	RPCURL string
	RPCKey string

	// Timeout bounds a single store lookup.
	Timeout time.Duration
}

// DefaultConfig returns the store defaults.
func DefaultConfig() Config {
	return Config{
		Procedure:   DefaultProcedure,
		RedisPrefix: DefaultRedisPrefix,
		Timeout:     3 * time.Second,
	}
}

// LoadConfigFromEnv loads store configuration from environment variables.
//
// Optional:
//   - ECHO_SESSION_STORE (postgres|redis|rpc|memory)
//   - ECHO_SESSION_PROCEDURE
//   - ECHO_SESSION_REDIS_PREFIX
//   - ECHO_STORE_RPC_URL, ECHO_STORE_RPC_KEY
//   - ECHO_STORE_TIMEOUT (Go duration)
//
// hasDB and hasRedis report whether the app has those connections configured;
// they drive the default Kind.
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv(hasDB, hasRedis bool) (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("ECHO_SESSION_PROCEDURE")); v != "" {
		cfg.Procedure = v
	}
	if v := strings.TrimSpace(os.Getenv("ECHO_SESSION_REDIS_PREFIX")); v != "" {
		cfg.RedisPrefix = v
	}
	cfg.RPCURL = strings.TrimSpace(os.Getenv("ECHO_STORE_RPC_URL"))
	cfg.RPCKey = strings.TrimSpace(os.Getenv("ECHO_STORE_RPC_KEY"))

	if v := strings.TrimSpace(os.Getenv("ECHO_STORE_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.Timeout = d
	}

	switch k := Kind(strings.ToLower(strings.TrimSpace(os.Getenv("ECHO_SESSION_STORE")))); k {
	case "":
		switch {
		case cfg.RPCURL != "":
			cfg.Kind = KindRPC
		case hasDB:
			cfg.Kind = KindPostgres
		case hasRedis:
			cfg.Kind = KindRedis
		default:
			cfg.Kind = KindMemory
		}
	case KindPostgres, KindRedis, KindRPC, KindMemory:
		cfg.Kind = k
	default:
		return Config{}, ErrConfig
	}

	if cfg.Kind == KindRPC && cfg.RPCURL == "" {
		return Config{}, ErrConfig
	}

	return cfg, nil
}
