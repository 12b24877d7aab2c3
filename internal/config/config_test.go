package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://stats@localhost:5432/stats")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CLICKHOUSE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.WorkerCount != 2 || cfg.QueueSize != 5000 || cfg.BatchSize != 200 {
		t.Errorf("worker defaults = %d/%d/%d", cfg.WorkerCount, cfg.QueueSize, cfg.BatchSize)
	}
	if cfg.FlushInterval != 2*time.Second {
		t.Errorf("FlushInterval = %v", cfg.FlushInterval)
	}
	if cfg.SeasonCacheTTL != 5*time.Minute {
		t.Errorf("SeasonCacheTTL = %v", cfg.SeasonCacheTTL)
	}
	if cfg.MaxLimit != 500 {
		t.Errorf("MaxLimit = %d", cfg.MaxLimit)
	}
	if cfg.AnalyticsEnabled() {
		t.Error("analytics should be disabled without CLICKHOUSE_URL")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://stats@db:5432/stats")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("CLICKHOUSE_URL", "clickhouse://ch:9000/stats_api")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MAX_LIMIT", "50")
	t.Setenv("FLUSH_INTERVAL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !cfg.AnalyticsEnabled() {
		t.Error("analytics should be enabled")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.MaxLimit != 50 {
		t.Errorf("MaxLimit = %d", cfg.MaxLimit)
	}
	if cfg.FlushInterval != 2*time.Second {
		t.Errorf("malformed duration should fall back, got %v", cfg.FlushInterval)
	}
}

func TestLoad_Required(t *testing.T) {
	tests := []struct {
		name     string
		postgres string
		redis    string
	}{
		{"Missing Postgres", "", "redis://localhost:6379/0"},
		{"Missing Redis", "postgres://localhost/stats", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POSTGRES_URL", tt.postgres)
			t.Setenv("REDIS_URL", tt.redis)
			if _, err := Load(); err == nil {
				t.Fatal("expected error for missing configuration")
			}
		})
	}
}

func TestLoad_InvalidLimits(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://localhost/stats")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("WORKER_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for WORKER_COUNT=0")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STATS_TEST_DOTENV=from-file\nSTATS_TEST_KEEP=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STATS_TEST_KEEP", "from-env")
	t.Cleanup(func() { os.Unsetenv("STATS_TEST_DOTENV") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("STATS_TEST_DOTENV"); got != "from-file" {
		t.Errorf("STATS_TEST_DOTENV = %q", got)
	}
	if got := os.Getenv("STATS_TEST_KEEP"); got != "from-env" {
		t.Errorf("STATS_TEST_KEEP = %q, existing env must win", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
