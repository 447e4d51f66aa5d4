package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config files can carry values like "30s".
// Plain numbers are read as seconds, matching older deployments.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Std returns the wrapped standard duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds every knob of the recognition core
type Config struct {
	DataDir        string   `yaml:"data_dir" toml:"data_dir" env:"GEMS_DATA_DIR"`
	AttachmentsDir string   `yaml:"attachments_dir" toml:"attachments_dir" env:"GEMS_ATTACHMENTS_DIR"`
	BackupDir      string   `yaml:"backup_dir" toml:"backup_dir" env:"GEMS_BACKUP_DIR"`
	CacheTTL       Duration `yaml:"cache_ttl" toml:"cache_ttl" env:"GEMS_CACHE_TTL"`
	BackupSchedule string   `yaml:"backup_schedule" toml:"backup_schedule" env:"GEMS_BACKUP_SCHEDULE"`
	LogLevel       string   `yaml:"log_level" toml:"log_level" env:"GEMS_LOG_LEVEL"`
	DatabaseURL    string   `yaml:"database_url" toml:"database_url" env:"DATABASE_URL"`
	HealthAddr     string   `yaml:"health_addr" toml:"health_addr" env:"GEMS_HEALTH_ADDR"`
}

// Load builds the configuration from the first available source:
// config/gems.yaml, then config/gems.toml, then environment variables
// (with .env support), then defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadYAMLConfig(cfg); err != nil {
		if err := loadTOMLConfig(cfg); err != nil {
			loadEnvConfig(cfg)
		}
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadYAMLConfig attempts to load configuration from YAML file
func loadYAMLConfig(cfg *Config) error {
	yamlPath := filepath.Join("config", "gems.yaml")
	if _, err := os.Stat(yamlPath); os.IsNotExist(err) {
		return fmt.Errorf("YAML config file not found: %s", yamlPath)
	}

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("failed to read YAML config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// loadTOMLConfig attempts to load configuration from TOML file
func loadTOMLConfig(cfg *Config) error {
	tomlPath := filepath.Join("config", "gems.toml")
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		return fmt.Errorf("TOML config file not found: %s", tomlPath)
	}

	if _, err := toml.DecodeFile(tomlPath, cfg); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return nil
}

// loadEnvConfig loads configuration from environment variables
func loadEnvConfig(cfg *Config) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		godotenv.Load()
	}

	cfg.DataDir = getEnvString("GEMS_DATA_DIR", "")
	cfg.AttachmentsDir = getEnvString("GEMS_ATTACHMENTS_DIR", "")
	cfg.BackupDir = getEnvString("GEMS_BACKUP_DIR", "")
	cfg.CacheTTL = Duration(getEnvDuration("GEMS_CACHE_TTL", 0))
	cfg.BackupSchedule = getEnvString("GEMS_BACKUP_SCHEDULE", "")
	cfg.LogLevel = getEnvString("GEMS_LOG_LEVEL", "")
	cfg.DatabaseURL = getEnvString("DATABASE_URL", "")
	cfg.HealthAddr = getEnvString("GEMS_HEALTH_ADDR", "")
}

// applyDefaults fills anything the chosen source left unset
func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.AttachmentsDir == "" {
		cfg.AttachmentsDir = "anexos"
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = Duration(5 * time.Minute)
	}
	if cfg.BackupSchedule == "" {
		cfg.BackupSchedule = "@hourly"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HealthAddr == "" {
		cfg.HealthAddr = ":8080"
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.AttachmentsDir == "" {
		return fmt.Errorf("attachments_dir cannot be empty")
	}
	if c.BackupDir == "" {
		return fmt.Errorf("backup_dir cannot be empty")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative, got %v", c.CacheTTL.Std())
	}
	if c.BackupSchedule == "" {
		return fmt.Errorf("backup_schedule cannot be empty")
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := parseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if duration, err := time.ParseDuration(raw); err == nil {
		return duration, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid duration %q", raw)
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
