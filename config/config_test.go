package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, "toughstore", cfg.System.Appid)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigFromFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "toughstore.yml")
	content := `
system:
  appid: storetest
  workdir: /tmp/storetest
web:
  host: 127.0.0.1
  port: 9090
  secret: filesecret
database:
  type: sqlite
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "storetest", cfg.System.Appid)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOUGHSTORE_WEB_PORT", "8088")
	t.Setenv("TOUGHSTORE_WEB_SECRET", "envsecret")
	t.Setenv("TOUGHSTORE_DB_TYPE", "sqlite")
	t.Setenv("TOUGHSTORE_SYSTEM_DEBUG", "false")

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "envsecret", cfg.Web.Secret)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.False(t, cfg.System.Debug)
}
