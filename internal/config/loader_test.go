package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRACTICE_CONFIG_FILE",
		"PRACTICE_HTTP_PORT",
		"PRACTICE_SQLITE_DSN",
		"PRACTICE_LOG_LEVEL",
		"PRACTICE_RETENTION_DAYS",
		"PRACTICE_VIEW_CACHE_TTL",
	} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoader_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:practice.db?_pragma=foreign_keys(1)" {
		t.Errorf("unexpected default DSN: %q", cfg.SQLiteDSN)
	}
	if cfg.RetentionDays != 0 {
		t.Errorf("expected retention disabled by default, got %d", cfg.RetentionDays)
	}
	if cfg.DayStartHour != 6 || cfg.DayEndHour != 22 || cfg.SlotMinutes != 30 {
		t.Errorf("unexpected default week window: %d-%d/%d",
			cfg.DayStartHour, cfg.DayEndHour, cfg.SlotMinutes)
	}
	if cfg.ViewCacheTTL != 30*time.Second {
		t.Errorf("expected default cache TTL 30s, got %s", cfg.ViewCacheTTL)
	}
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRACTICE_HTTP_PORT", "9090")
	t.Setenv("PRACTICE_SQLITE_DSN", "file:/tmp/practice.db")
	t.Setenv("PRACTICE_LOG_LEVEL", "debug")
	t.Setenv("PRACTICE_RETENTION_DAYS", "90")
	t.Setenv("PRACTICE_VIEW_CACHE_TTL", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("expected HTTP port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:/tmp/practice.db" {
		t.Errorf("unexpected DSN: %q", cfg.SQLiteDSN)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.RetentionDays != 90 {
		t.Errorf("expected retention 90 days, got %d", cfg.RetentionDays)
	}
	if cfg.ViewCacheTTL != 2*time.Minute {
		t.Errorf("expected cache TTL 2m, got %s", cfg.ViewCacheTTL)
	}
}

func TestLoader_InvalidEnvironmentValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRACTICE_HTTP_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed port")
	}

	clearEnv(t)
	t.Setenv("PRACTICE_RETENTION_DAYS", "-3")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for negative retention")
	}
}

func TestLoader_FileOverlay(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("http_port: 7070\nday_start_hour: 8\nday_end_hour: 20\nslot_minutes: 15\nview_cache_ttl: 45s\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("PRACTICE_CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 7070 {
		t.Errorf("expected HTTP port 7070 from file, got %d", cfg.HTTPPort)
	}
	if cfg.DayStartHour != 8 || cfg.DayEndHour != 20 || cfg.SlotMinutes != 15 {
		t.Errorf("unexpected week window from file: %d-%d/%d",
			cfg.DayStartHour, cfg.DayEndHour, cfg.SlotMinutes)
	}
	if cfg.ViewCacheTTL != 45*time.Second {
		t.Errorf("expected cache TTL 45s from file, got %s", cfg.ViewCacheTTL)
	}
}

func TestLoader_EnvironmentBeatsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http_port: 7070\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("PRACTICE_CONFIG_FILE", path)
	t.Setenv("PRACTICE_HTTP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("expected the environment to win, got %d", cfg.HTTPPort)
	}
}

func TestLoader_RejectsInconsistentWindow(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("day_start_hour: 22\nday_end_hour: 6\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("PRACTICE_CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an inverted day window")
	}
}
