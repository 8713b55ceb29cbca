package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ECHO_SESSION_STORE",
		"ECHO_SESSION_PROCEDURE",
		"ECHO_SESSION_REDIS_PREFIX",
		"ECHO_STORE_RPC_URL",
		"ECHO_STORE_RPC_KEY",
		"ECHO_STORE_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigFromEnv_DerivedKind(t *testing.T) {
	cases := []struct {
		name     string
		rpcURL   string
		hasDB    bool
		hasRedis bool
		want     Kind
	}{
		{name: "nothing", want: KindMemory},
		{name: "redis only", hasRedis: true, want: KindRedis},
		{name: "db wins over redis", hasDB: true, hasRedis: true, want: KindPostgres},
		{name: "rpc wins", rpcURL: "https://store.example.com", hasDB: true, want: KindRPC},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearStoreEnv(t)
			t.Setenv("ECHO_STORE_RPC_URL", tc.rpcURL)

			cfg, err := LoadConfigFromEnv(tc.hasDB, tc.hasRedis)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Kind)
		})
	}
}

func TestLoadConfigFromEnv_Explicit(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("ECHO_SESSION_STORE", "Redis")
	t.Setenv("ECHO_SESSION_REDIS_PREFIX", "app:sess:")
	t.Setenv("ECHO_SESSION_PROCEDURE", "auth.validate_session")
	t.Setenv("ECHO_STORE_TIMEOUT", "750ms")

	cfg, err := LoadConfigFromEnv(true, true)
	require.NoError(t, err)
	assert.Equal(t, KindRedis, cfg.Kind)
	assert.Equal(t, "app:sess:", cfg.RedisPrefix)
	assert.Equal(t, "auth.validate_session", cfg.Procedure)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown kind":     {"ECHO_SESSION_STORE": "mongo"},
		"negative timeout": {"ECHO_STORE_TIMEOUT": "-1s"},
		"bad timeout":      {"ECHO_STORE_TIMEOUT": "soon"},
		"rpc without url":  {"ECHO_SESSION_STORE": "rpc"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearStoreEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfigFromEnv(false, false)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestNewStore_MissingBackend(t *testing.T) {
	t.Parallel()

	_, err := NewStore(Config{Kind: KindPostgres}, Backends{})
	assert.ErrorIs(t, err, ErrBackendMissing)

	_, err = NewStore(Config{Kind: KindRedis}, Backends{})
	assert.ErrorIs(t, err, ErrBackendMissing)

	st, err := NewStore(Config{Kind: KindMemory}, Backends{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)
}

func TestProcedureIdentifier(t *testing.T) {
	t.Parallel()

	id, err := procedureIdentifier("")
	require.NoError(t, err)
	assert.Equal(t, `"validate_session"`, id.Sanitize())

	id, err = procedureIdentifier("auth.validate_session")
	require.NoError(t, err)
	assert.Equal(t, `"auth"."validate_session"`, id.Sanitize())

	id, err = procedureIdentifier(`x"); DROP TABLE s; --`)
	require.NoError(t, err)
	assert.Equal(t, `"x""); DROP TABLE s; --"`, id.Sanitize())

	for _, bad := range []string{"a.b.c", "a.", ".b"} {
		_, err := procedureIdentifier(bad)
		assert.ErrorIs(t, err, ErrConfig, bad)
	}
}
