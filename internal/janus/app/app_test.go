package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"JANUS_STORE_DRIVER", "JANUS_DATABASE_FILE", "JANUS_DATABASE_URL",
		"JANUS_REDIS_ADDR", "JANUS_PENDING_TTL", "JANUS_MAX_POLL_WAIT",
		"ENV", "LOG_LEVEL", "LOG_FORMAT", "PORT", "SHUTDOWN_GRACE_PERIOD", "BACKLOG_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, "janus.db", cfg.DatabaseFile)
	require.Empty(t, cfg.RedisAddr)
	require.Zero(t, cfg.PendingTTL)
	require.Equal(t, 20*time.Second, cfg.MaxPollWait)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Minute, cfg.BacklogInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JANUS_STORE_DRIVER", "postgres")
	t.Setenv("JANUS_DATABASE_URL", "postgres://janus@localhost/janus")
	t.Setenv("JANUS_PENDING_TTL", "5m")
	t.Setenv("JANUS_MAX_POLL_WAIT", "45")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKLOG_INTERVAL", "not-a-duration")

	cfg := LoadConfig()
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, 5*time.Minute, cfg.PendingTTL)
	require.Equal(t, 45*time.Second, cfg.MaxPollWait)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, time.Minute, cfg.BacklogInterval)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	base := Config{StoreDriver: DriverSQLite, DatabaseFile: "janus.db"}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.StoreDriver = "mysql" }},
		{"empty sqlite file", func(c *Config) { c.DatabaseFile = "" }},
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }},
		{"negative ttl", func(c *Config) { c.PendingTTL = -time.Second }},
		{"negative poll wait", func(c *Config) { c.MaxPollWait = -time.Second }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		StoreDriver:         DriverSQLite,
		DatabaseFile:        filepath.Join(t.TempDir(), "janus.db"),
		MaxPollWait:         time.Second,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
		BacklogInterval:     time.Hour,
	}
}

func TestNewWiresSQLiteApplication(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)

	application.backlogService.Start()
	defer func() { require.NoError(t, application.Shutdown()) }()

	srv := httptest.NewServer(application.router)
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"displayName": "Ana", "email": "ana@example.com"})
	resp, err := http.Post(srv.URL+"/v1/users", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	metrics, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(metrics), "go_goroutines")
	require.Contains(t, string(metrics), "janus_pending_auth_requests")
}

func TestNewWithRedisNotifier(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()

	application, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.relay)
	require.Same(t, application.relay, application.notifier)

	application.backlogService.Start()
	require.NoError(t, application.Shutdown())
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := New(cfg)
	require.Error(t, err)
}
