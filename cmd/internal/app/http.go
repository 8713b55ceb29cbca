package app

import (
	"net/http"
	"time"

	"echo/cmd/internal/audit"
	"echo/cmd/internal/auth/api"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type routes struct {
	log     Logger
	cfg     Config
	started time.Time

	dbPool *pgxpool.Pool
	redis  *redis.Client

	registry *prometheus.Registry
	checks   []healthCheck

	gateway *api.Gateway
	audit   *audit.Handler
}

func registerHTTP(mux *http.ServeMux, rt routes) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if rt.cfg.ReadinessRequireDB && rt.dbPool == nil {
			http.Error(w, "db not configured", http.StatusServiceUnavailable)
			return
		}

		if rt.dbPool != nil {
			if err := PingDB(r.Context(), rt.dbPool, 2*time.Second); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				rt.log.Info("readyz.db.not_ready", "err", err)
				return
			}
		}

		if rt.redis != nil {
			if err := PingRedis(r.Context(), rt.redis, 2*time.Second); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				rt.log.Info("readyz.redis.not_ready", "err", err)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	mux.Handle("/uptime", newUptimeHandler(rt.log, rt.cfg.Version, rt.started, rt.checks))

	if rt.registry != nil {
		mux.Handle("/metrics", metricsHandler(rt.registry))
	}

	rt.gateway.Register(mux)
	rt.audit.Register(mux)
}
