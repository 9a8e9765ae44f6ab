// Package config loads service configuration from an optional YAML file and
// the process environment, the environment taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime settings of the practice scheduler service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	LogLevel      string
	RetentionDays int
	ViewCacheTTL  time.Duration
	DayStartHour  int
	DayEndHour    int
	SlotMinutes   int
}

// fileConfig mirrors Config for the YAML overlay. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	HTTPPort      *int    `yaml:"http_port"`
	SQLiteDSN     *string `yaml:"sqlite_dsn"`
	LogLevel      *string `yaml:"log_level"`
	RetentionDays *int    `yaml:"retention_days"`
	ViewCacheTTL  *string `yaml:"view_cache_ttl"`
	DayStartHour  *int    `yaml:"day_start_hour"`
	DayEndHour    *int    `yaml:"day_end_hour"`
	SlotMinutes   *int    `yaml:"slot_minutes"`
}

// Load resolves configuration in three layers: built-in defaults, then the
// YAML file named by PRACTICE_CONFIG_FILE (when set), then PRACTICE_*
// environment variables.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:practice.db?_pragma=foreign_keys(1)",
		LogLevel:      "info",
		RetentionDays: 0,
		ViewCacheTTL:  30 * time.Second,
		DayStartHour:  6,
		DayEndHour:    22,
		SlotMinutes:   30,
	}

	invalid := make([]string, 0, 2)

	if path := strings.TrimSpace(os.Getenv("PRACTICE_CONFIG_FILE")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if portValue := strings.TrimSpace(os.Getenv("PRACTICE_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PRACTICE_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("PRACTICE_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if level := strings.TrimSpace(os.Getenv("PRACTICE_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if retentionValue := strings.TrimSpace(os.Getenv("PRACTICE_RETENTION_DAYS")); retentionValue != "" {
		days, err := strconv.Atoi(retentionValue)
		if err != nil || days < 0 {
			invalid = append(invalid, "PRACTICE_RETENTION_DAYS")
		} else {
			cfg.RetentionDays = days
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("PRACTICE_VIEW_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "PRACTICE_VIEW_CACHE_TTL")
		} else {
			cfg.ViewCacheTTL = ttl
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var overlay fileConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if overlay.HTTPPort != nil {
		cfg.HTTPPort = *overlay.HTTPPort
	}
	if overlay.SQLiteDSN != nil {
		cfg.SQLiteDSN = *overlay.SQLiteDSN
	}
	if overlay.LogLevel != nil {
		cfg.LogLevel = *overlay.LogLevel
	}
	if overlay.RetentionDays != nil {
		cfg.RetentionDays = *overlay.RetentionDays
	}
	if overlay.ViewCacheTTL != nil {
		ttl, err := time.ParseDuration(*overlay.ViewCacheTTL)
		if err != nil {
			return fmt.Errorf("config: parse %s: invalid view_cache_ttl %q", path, *overlay.ViewCacheTTL)
		}
		cfg.ViewCacheTTL = ttl
	}
	if overlay.DayStartHour != nil {
		cfg.DayStartHour = *overlay.DayStartHour
	}
	if overlay.DayEndHour != nil {
		cfg.DayEndHour = *overlay.DayEndHour
	}
	if overlay.SlotMinutes != nil {
		cfg.SlotMinutes = *overlay.SlotMinutes
	}
	return nil
}

func validate(cfg Config) error {
	var problems []string
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		problems = append(problems, "http_port must be between 1 and 65535")
	}
	if cfg.DayStartHour < 0 || cfg.DayEndHour > 24 || cfg.DayStartHour >= cfg.DayEndHour {
		problems = append(problems, "day window hours must satisfy 0 <= start < end <= 24")
	}
	if cfg.SlotMinutes <= 0 || cfg.SlotMinutes > 60 {
		problems = append(problems, "slot_minutes must be between 1 and 60")
	}
	if cfg.RetentionDays < 0 {
		problems = append(problems, "retention_days cannot be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
