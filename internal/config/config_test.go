package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/tmp/litera"},
		Reminder: ReminderConfig{
			DailyAt:     "08:00",
			ScanTimeout: 2 * time.Minute,
			MaxRetries:  3,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"bad reminder time", func(c *Config) { c.Reminder.DailyAt = "8am" }},
		{"negative retries", func(c *Config) { c.Reminder.MaxRetries = -1 }},
		{"push enabled without endpoint", func(c *Config) { c.Push.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, filepath.Join("/tmp/litera", "db"), cfg.StorePath())
	assert.Equal(t, filepath.Join("/tmp/litera", "search"), cfg.SearchIndexPath())
	assert.Equal(t, filepath.Join("/tmp/litera", "covers"), cfg.CoversPath())
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("LITERA_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "LITERA_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "LITERA_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "LITERA_TEST_MISSING", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("LITERA_TEST_BOOL", "YES")
	assert.True(t, getBoolConfigValue("", "LITERA_TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("no", "LITERA_TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "LITERA_TEST_BOOL_MISSING", true))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nLITERA_ENVFILE_KEY=\"quoted\"\n\n"), 0o600))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "quoted", os.Getenv("LITERA_ENVFILE_KEY"))
	t.Cleanup(func() { os.Unsetenv("LITERA_ENVFILE_KEY") })
}

func TestLoadEnvFile_BadLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("not a pair\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}
