// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type DatabaseConfig struct {
	// memory keeps history for the life of the process; sqlite persists it.
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`

	// Redis connection, used by the redis driver.
	Address  string `yaml:"address"`
	RedisDB  int    `yaml:"redis_db"`
	Password string `yaml:"-"` // Loaded from environment
}

type PaletteConfig struct {
	Default string `yaml:"default"`
	// Optional YAML palette loaded on top of the builtins.
	File string `yaml:"file"`
}

type SamplingConfig struct {
	// Matches the browser sampler tick.
	IntervalMillis int `yaml:"interval_ms"`
	// Max recorded samples per session per minute.
	MaxPerMinute int `yaml:"max_per_minute"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`
	Palette  PaletteConfig  `yaml:"palette"`
	Sampling SamplingConfig `yaml:"sampling"`

	Scheduler struct {
		StatsCron string `yaml:"stats_cron"`
	} `yaml:"scheduler"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "Chromapick"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.Database.Driver = DriverMemory
	cfg.applyDefaults()
	return &cfg
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Database.Password = os.Getenv("REDIS_PASSWORD")

	return cfg, nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Sampling.IntervalMillis == 0 {
		c.Sampling.IntervalMillis = 500
	}
	if c.Sampling.MaxPerMinute == 0 {
		// One sample per tick, with headroom for manual picks.
		c.Sampling.MaxPerMinute = 2 * int(time.Minute/time.Millisecond) / c.Sampling.IntervalMillis
	}
	if c.Scheduler.StatsCron == "" {
		c.Scheduler.StatsCron = "*/5 * * * *"
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Sampling.IntervalMillis < 0 {
		return fmt.Errorf("sampling interval must be positive")
	}
	if c.Sampling.MaxPerMinute < 0 {
		return fmt.Errorf("sampling max_per_minute must be positive")
	}

	if _, err := cron.ParseStandard(c.Scheduler.StatsCron); err != nil {
		return fmt.Errorf("invalid scheduler stats_cron %q: %w", c.Scheduler.StatsCron, err)
	}

	// Validate based on database driver
	switch c.Database.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case DriverRedis:
		if c.Database.Address == "" {
			return fmt.Errorf("database address is required for redis")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}

// SampleInterval is the browser sampler tick.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.Sampling.IntervalMillis) * time.Millisecond
}
