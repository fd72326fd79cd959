package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
	assert.Equal(t, DefaultAppConfig.Database.Type, cfg.Database.Type)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := []byte(`
system:
  appid: hotelops-test
  location: Africa/Lagos
web:
  host: 127.0.0.1
  port: 9090
database:
  host: dbhost
  name: hotelops
`)
	path := filepath.Join(t.TempDir(), "hotelops.yml")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg := LoadConfig(path)
	assert.Equal(t, "hotelops-test", cfg.System.Appid)
	assert.Equal(t, "Africa/Lagos", cfg.System.Location)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "dbhost", cfg.Database.Host)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOTELOPS_WEB_PORT", "8099")
	t.Setenv("HOTELOPS_DB_HOST", "envdb")

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, 8099, cfg.Web.Port)
	assert.Equal(t, "envdb", cfg.Database.Host)
}
