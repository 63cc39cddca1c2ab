package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/apollo-contacts-export.csv", cfg.Data.CSVPath)
	assert.Equal(t, "json", cfg.Tracker.Driver)
	assert.Equal(t, "data/contact-tracking.json", cfg.Tracker.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  csv_path: /srv/contacts.csv
tracker:
  driver: sqlite
  path: /srv/tracking.db
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/contacts.csv", cfg.Data.CSVPath)
	assert.Equal(t, "sqlite", cfg.Tracker.Driver)
	assert.Equal(t, "/srv/tracking.db", cfg.Tracker.Path)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PROSPECTOR_DATA_CSV_PATH", "/env/contacts.csv")
	t.Setenv("PROSPECTOR_TRACKER_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/env/contacts.csv", cfg.Data.CSVPath)
	assert.Equal(t, "sqlite", cfg.Tracker.Driver)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

func TestInitLoggerBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "loud", Format: "json"}))
}
