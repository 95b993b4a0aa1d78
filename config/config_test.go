package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "session_key: abc\n"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3003", cfg.Listen)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, "./data/media", cfg.MediaDir)
	assert.Equal(t, "./data", cfg.Database.Path)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
listen: 127.0.0.1:8080
session_key: abc
master_key: topsecret
database:
  path: /var/lib/delicious
`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "topsecret", cfg.MasterKey)
	assert.Equal(t, "/var/lib/delicious", cfg.Database.Path)
}

func TestLoad_RequiresSessionKey(t *testing.T) {
	_, err := Load(writeConfig(t, "listen: 127.0.0.1:8080\n"))
	assert.ErrorContains(t, err, "session_key")
}

func TestLoad_SessionKeyFromEnv(t *testing.T) {
	t.Setenv("DELICIOUS_SESSION_KEY", "from-env")

	cfg, err := Load(writeConfig(t, "listen: 127.0.0.1:8080\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SessionKey)
}
