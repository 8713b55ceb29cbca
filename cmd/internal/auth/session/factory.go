package session

import (
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Backends are the shared clients a store may be built on. The app owns their lifecycle.
type Backends struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
	HTTP  *http.Client
}

// NewStore builds the Store selected by cfg.
func NewStore(cfg Config, b Backends) (Store, error) {
	switch cfg.Kind {
	case KindPostgres:
		if b.Pool == nil {
			return nil, fmt.Errorf("%w: %s", ErrBackendMissing, cfg.Kind)
		}
		return NewPostgresStore(b.Pool, cfg.Procedure)
	case KindRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("%w: %s", ErrBackendMissing, cfg.Kind)
		}
		return NewRedisStore(b.Redis, cfg.RedisPrefix)
	case KindRPC:
		return NewRPCStore(b.HTTP, cfg.RPCURL, cfg.Procedure, cfg.RPCKey, cfg.Timeout)
	case KindMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", ErrConfig, cfg.Kind)
	}
}
