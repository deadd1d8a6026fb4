package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
timezone: Europe/Berlin
companion:
  name: Bruno
reminders:
  poll_interval: 30s
rewards:
  goal: 75
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("TEDDY_DB_PATH", "/tmp/teddy-test.db")
	t.Setenv("TEDDY_REMINDER_DUE_WINDOW", "2m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "Bruno", cfg.Companion.Name)
	assert.Equal(t, 30*time.Second, cfg.Reminders.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Reminders.DueWindow)
	assert.Equal(t, 75, cfg.Rewards.Goal)
	assert.Equal(t, 10, cfg.Rewards.TaskLow, "unset fields keep defaults")
	assert.Equal(t, "/tmp/teddy-test.db", cfg.Database.Path)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEDDY_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("TEDDY_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Reminders.PollInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Rewards.Goal = -1
	assert.Error(t, cfg.Validate())
}

func TestSaveThenLoad(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Companion.Name = "Pip"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Pip", got.Companion.Name)
	assert.Equal(t, time.Minute, got.Reminders.DueWindow)
}
