package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"JOBTRACKER_CONFIG_PATH", "JOBTRACKER_SERVER_HOST", "JOBTRACKER_SERVER_PORT",
		"JOBTRACKER_TRANSPORT", "JOBTRACKER_DB_PATH", "JOBTRACKER_STORAGE_KEY",
		"JOBTRACKER_LOG_LEVEL", "JOBTRACKER_LOG_PATH", "JOBTRACKER_EXPORT_DIR",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, TransportStdio, cfg.Transport.Mode)
	require.Equal(t, "job-tracker-companies", cfg.Storage.Key)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
transport:
  mode: http
db:
  path: /tmp/tracker.db
log:
  level: debug
`), 0o644))

	t.Setenv("JOBTRACKER_CONFIG_PATH", path)
	t.Setenv("JOBTRACKER_DB_PATH", "override.db")
	t.Setenv("JOBTRACKER_EXPORT_DIR", "exports")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, "override.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "exports", cfg.Export.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBTRACKER_SERVER_PORT", "eighty")
	_, err := Load()
	require.ErrorContains(t, err, "JOBTRACKER_SERVER_PORT")

	clearEnv(t)
	t.Setenv("JOBTRACKER_TRANSPORT", "carrier-pigeon")
	_, err = Load()
	require.ErrorContains(t, err, "invalid transport mode")

	clearEnv(t)
	t.Setenv("JOBTRACKER_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.ErrorContains(t, err, "read config file")
}
