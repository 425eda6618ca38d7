package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(envMap(map[string]string{"DATABASE_URL": "postgres://x"}))
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.Addr)
	assert.Equal(t, "web", c.WebDir)
	assert.Equal(t, StorePostgres, c.Store)
	assert.Equal(t, SessionsSQL, c.SessionStore)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Empty(t, c.MetricsAddr)
	assert.Empty(t, c.AdminHash)
	assert.Equal(t, "development", c.Env)
}

func TestFromEnvOverrides(t *testing.T) {
	c, err := FromEnv(envMap(map[string]string{
		"ADDR":          ":8080",
		"WEB_DIR":       "/srv/www",
		"STORE":         "Memory",
		"SESSION_STORE": "redis",
		"REDIS_URL":     "redis://localhost:6379/0",
		"ADMIN_HASH":    "$2a$10$abc",
		"METRICS_ADDR":  ":9090",
		"LOG_LEVEL":     "debug",
		"APP_ENV":       "staging",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "/srv/www", c.WebDir)
	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, SessionsRedis, c.SessionStore)
	assert.Equal(t, "$2a$10$abc", c.AdminHash)
	assert.Equal(t, ":9090", c.MetricsAddr)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "staging", c.Env)
}

func TestFromEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database url": {},
		"unknown store":        {"STORE": "sqlite"},
		"redis without url":    {"STORE": "memory", "SESSION_STORE": "redis"},
		"unknown sessions":     {"STORE": "memory", "SESSION_STORE": "file"},
		"bad log level":        {"STORE": "memory", "LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, writeFile(dir+"/.env", "STORE=memory\nADDR=:4000\n"))
	unsetenv(t, "APP_ENV", "STORE", "ADDR")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, ":4000", c.Addr)
}

func TestLoadSkipsDotEnvInProduction(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, writeFile(dir+"/.env", "ADDR=:4000\n"))
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE", "memory")
	unsetenv(t, "ADDR")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", c.Addr)
	assert.Equal(t, "production", c.Env)
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

// unsetenv clears keys for the test and restores them afterwards. godotenv
// never overrides a variable that is present, even when empty.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
