package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	// HTTP
	AppPort         int           `env:"APP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Storage
	StorageBackend   string        `env:"STORAGE_BACKEND" envDefault:"memory"`
	StorageNamespace string        `env:"STORAGE_NAMESPACE" envDefault:"skillmatch"`
	StorageTimeout   time.Duration `env:"STORAGE_TIMEOUT" envDefault:"3s"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PostgresDSN string `env:"POSTGRES_DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"skillmatch.db"`

	// Workspace slots
	SimpleLoadDelay time.Duration `env:"SIMPLE_LOAD_DELAY" envDefault:"300ms"`

	// Demo postings are seeded for this recruiter when it has none
	DemoRecruiterID string `env:"DEMO_RECRUITER_ID"`
	DemoCompany     string `env:"DEMO_COMPANY" envDefault:"SkillMatch"`

	// Requests per client per minute, 0 disables the limiter
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the process environment
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is empty")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres DSN is empty")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}

	if c.StorageBackend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite path is empty")
	}

	if c.StorageNamespace == "" {
		return fmt.Errorf("storage namespace is empty")
	}

	if c.AppPort < 1 || c.AppPort > 65535 {
		return fmt.Errorf("invalid port: %d", c.AppPort)
	}

	if c.StorageTimeout <= 0 {
		return fmt.Errorf("storage timeout must be positive: %v", c.StorageTimeout)
	}

	if c.SimpleLoadDelay < 0 {
		return fmt.Errorf("simple load delay is negative: %v", c.SimpleLoadDelay)
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate limit is negative: %d", c.RateLimitPerMinute)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.AppPort)
}
