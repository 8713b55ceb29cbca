// Package app wires the echo server runtime: config, logging, backing
// clients, the session gateway, and the operational routes.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"echo/cmd/internal/audit"
	"echo/cmd/internal/auth/api"
	"echo/cmd/internal/auth/cookie"
	"echo/cmd/internal/auth/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// App is the echo server runtime: it owns backing clients and HTTP wiring.
type App struct {
	cfg     Config
	log     Logger
	started time.Time

	dbPool *pgxpool.Pool
	redis  *redis.Client

	registry *prometheus.Registry
	checks   []healthCheck

	gateway *api.Gateway
	audit   *audit.Handler
}

// New constructs a fully wired App instance from config and logger.
// Component settings are read from the environment by their packages.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}
	ctx := context.Background()

	a := &App{
		cfg:      cfg,
		log:      log,
		started:  time.Now(),
		registry: newRegistry(),
	}

	if err := a.openBackends(ctx); err != nil {
		a.closeBackends()
		return nil, err
	}
	if err := a.wire(); err != nil {
		a.closeBackends()
		return nil, err
	}
	return a, nil
}

func (a *App) openBackends(ctx context.Context) error {
	if a.cfg.DatabaseURL != "" {
		pool, err := NewDBPool(ctx, a.cfg)
		if err != nil {
			return err
		}
		a.dbPool = pool
		a.checks = append(a.checks, healthCheck{name: "database", check: func(ctx context.Context) error {
			return pool.Ping(ctx)
		}})
		a.log.Info("db.enabled")
	}

	if a.cfg.RedisURL != "" {
		client, err := NewRedisClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return err
		}
		a.redis = client
		a.checks = append(a.checks, healthCheck{name: "redis", check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
		a.log.Info("redis.enabled")
	}
	return nil
}

func (a *App) wire() error {
	sessCfg, err := session.LoadConfigFromEnv(a.dbPool != nil, a.redis != nil)
	if err != nil {
		return err
	}

	store, err := session.NewStore(sessCfg, session.Backends{
		Pool:  a.dbPool,
		Redis: a.redis,
		HTTP:  &http.Client{Timeout: sessCfg.Timeout},
	})
	if err != nil {
		return err
	}
	store = session.Instrument(store, string(sessCfg.Kind), session.NewStoreMetrics(a.registry))

	switch sessCfg.Kind {
	case session.KindMemory:
		a.log.Warn("session.store.memory", "hint", "no backing store configured; every token is rejected")
	case session.KindRPC:
		if p, ok := store.(session.Pinger); ok {
			a.checks = append(a.checks, healthCheck{name: "session_store", check: p.Ping})
		}
	}
	a.log.Info("session.store.selected", "kind", sessCfg.Kind, "timeout", sessCfg.Timeout)

	cookieCfg, err := cookie.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	a.gateway, err = api.NewGateway(
		a.log,
		api.LoadConfigFromEnv(),
		cookieCfg,
		session.NewValidator(store, sessCfg.Timeout),
		api.NewMetrics(a.registry),
	)
	if err != nil {
		return err
	}

	auditCfg := audit.LoadConfigFromEnv()
	switch {
	case !auditCfg.Enabled():
		a.log.Info("audit.disabled", "reason", "no_token")
	case a.dbPool == nil:
		a.log.Warn("audit.disabled", "reason", "no_database")
	default:
		runner, err := audit.NewPostgresRunner(a.dbPool, auditCfg.Procedure)
		if err != nil {
			return err
		}
		a.audit, err = audit.NewHandler(a.log, runner, auditCfg.Token)
		if err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the full middleware-wrapped route tree.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	registerHTTP(mux, routes{
		log:      a.log,
		cfg:      a.cfg,
		started:  a.started,
		dbPool:   a.dbPool,
		redis:    a.redis,
		registry: a.registry,
		checks:   a.checks,
		gateway:  a.gateway,
		audit:    a.audit,
	})

	var h http.Handler = mux
	h = WithSecurityHeaders(h)
	h = WithRecovery(h, a.log)
	h = WithRequestLogging(h, a.log)
	h = WithRequestID(h)
	return h
}

// Run starts the HTTP server and blocks until context cancellation or fatal server error.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start",
		"addr", a.cfg.HTTPAddr,
		"version", a.cfg.Version,
		"db_enabled", a.dbPool != nil,
		"redis_enabled", a.redis != nil,
		"audit_enabled", a.audit != nil,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		a.closeBackends()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), nonZeroDuration(a.cfg.ShutdownTimeout, 10*time.Second))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		a.closeBackends()
		return err
	}

	a.closeBackends()
	a.log.Info("server.stopped")
	return nil
}

// closeBackends releases pooled clients. The app owns their lifecycle; stores never close them.
func (a *App) closeBackends() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis.close.fail", "err", err)
		}
		a.redis = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
	}
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
