package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`app:
  name: "Chromapick"
  port: 9090
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Fatalf("database driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.SampleInterval() != 500*time.Millisecond {
		t.Fatalf("SampleInterval() = %v, want 500ms", cfg.SampleInterval())
	}
	if cfg.Sampling.MaxPerMinute != 240 {
		t.Fatalf("max per minute = %d, want 240", cfg.Sampling.MaxPerMinute)
	}
	if cfg.Scheduler.StatsCron != "*/5 * * * *" {
		t.Fatalf("stats cron = %q", cfg.Scheduler.StatsCron)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing_name", body: "app:\n  port: 1\n", wantErr: "app name is required"},
		{name: "missing_port", body: "app:\n  name: x\n", wantErr: "app port is required"},
		{name: "sqlite_without_file", body: "app:\n  name: x\n  port: 1\ndatabase:\n  driver: sqlite\n", wantErr: "filename is required"},
		{name: "redis_without_address", body: "app:\n  name: x\n  port: 1\ndatabase:\n  driver: redis\n", wantErr: "address is required"},
		{name: "unknown_driver", body: "app:\n  name: x\n  port: 1\ndatabase:\n  driver: postgres\n", wantErr: "unsupported database driver"},
		{name: "negative_interval", body: "app:\n  name: x\n  port: 1\nsampling:\n  interval_ms: -5\n", wantErr: "sampling interval"},
		{name: "bad_cron", body: "app:\n  name: x\n  port: 1\nscheduler:\n  stats_cron: \"every five minutes\"\n", wantErr: "invalid scheduler stats_cron"},
		{name: "malformed", body: "app: [", wantErr: "error parsing config file"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.body))
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Parse() error = %v, want %q", err, test.wantErr)
			}
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	body := `app:
  name: "Chromapick"
  environment: "production"
  port: 8081
database:
  driver: "sqlite"
  filename: "data/history.db"
palette:
  default: "basic"
features:
  enable_metrics: true
`
	if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_SECRET_KEY=from-env-file\n"), 0644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "")
	os.Unsetenv("APP_SECRET_KEY")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.SecretKey != "from-env-file" {
		t.Fatalf("secret key = %q, want from-env-file", cfg.App.SecretKey)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Palette.Default != "basic" || !cfg.Features.EnableMetrics {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load() of a missing file should fail")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoadRedisPasswordFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	body := "app:\n  name: x\n  port: 1\ndatabase:\n  driver: redis\n  address: localhost:6379\n  redis_db: 2\n"
	if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDIS_PASSWORD", "hunter2")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Address != "localhost:6379" || cfg.Database.RedisDB != 2 || cfg.Database.Password != "hunter2" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
}
