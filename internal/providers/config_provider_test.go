package providers

import (
	"os"
	"path/filepath"
	"smokeless/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigProvider_DefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SMOKELESS_HOME", home)
	t.Chdir(t.TempDir())

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(home, "missing.yaml")})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.Equal(t, "file", conf.Storage.Driver)
	assert.Equal(t, filepath.Join(home, "smokeless.dat"), conf.Storage.Path)
	assert.Equal(t, time.Minute, conf.Scheduler.RefreshInterval)
	assert.Equal(t, "info", conf.Logger.Level)
}

func TestNewConfigProvider_ReadsYamlAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
storage:
  driver: sqlite
  path: ` + filepath.Join(dir, "smokeless.db") + `
logger:
  level: debug
  dir: ` + filepath.Join(dir, "logs") + `
scheduler:
  refreshInterval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("SMOKELESS_PORT", "9100")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.Equal(t, 30*time.Second, conf.Scheduler.RefreshInterval)
	assert.Equal(t, 9100, conf.WebServer.Port)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
}

func TestNewConfigProvider_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: loud\n"), 0644))

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
