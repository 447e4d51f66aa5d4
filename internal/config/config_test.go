package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no config file or .env
// from the checkout leaks into the loader
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMS_DATA_DIR", "GEMS_ATTACHMENTS_DIR", "GEMS_BACKUP_DIR",
		"GEMS_CACHE_TTL", "GEMS_BACKUP_SCHEDULE", "GEMS_LOG_LEVEL",
		"DATABASE_URL", "GEMS_HEALTH_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "anexos", cfg.AttachmentsDir)
	assert.Equal(t, "backups", cfg.BackupDir)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL.Std())
	assert.Equal(t, "@hourly", cfg.BackupSchedule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("GEMS_DATA_DIR", "/srv/gems/data")
	t.Setenv("GEMS_CACHE_TTL", "120")
	t.Setenv("GEMS_LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/gems")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/gems/data", cfg.DataDir)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL.Std(), "plain numbers are seconds")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/gems", cfg.DatabaseURL)

	// Unset knobs still get defaults
	assert.Equal(t, "anexos", cfg.AttachmentsDir)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	content := "data_dir: /var/lib/gems\ncache_ttl: 30s\nlog_level: warn\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "gems.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/gems", cfg.DataDir)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL.Std())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "backups", cfg.BackupDir, "defaults fill what the file leaves unset")
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	t.Setenv("GEMS_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		DataDir:        "data",
		AttachmentsDir: "anexos",
		BackupDir:      "backups",
		CacheTTL:       Duration(time.Minute),
		BackupSchedule: "@hourly",
		LogLevel:       "info",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty attachments dir", func(c *Config) { c.AttachmentsDir = "" }},
		{"empty backup dir", func(c *Config) { c.BackupDir = "" }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = Duration(-time.Second) }},
		{"empty backup schedule", func(c *Config) { c.BackupSchedule = "" }},
		{"invalid log level", func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION", 0))

	t.Setenv("TEST_DURATION", "300")
	assert.Equal(t, 300*time.Second, getEnvDuration("TEST_DURATION", 0))

	t.Setenv("TEST_DURATION", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvDuration("TEST_DURATION", time.Minute))

	t.Setenv("TEST_DURATION", "")
	assert.Equal(t, time.Minute, getEnvDuration("TEST_DURATION", time.Minute))
}
