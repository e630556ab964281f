package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string        `yaml:"environment" default:"development" validate:"required"`
	Server      ServerConfig  `yaml:"server"`
	Log         LogConfig     `yaml:"log"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Charts      ChartsConfig  `yaml:"charts"`
	Cache       CacheConfig   `yaml:"cache"`
	Risk        RiskConfig    `yaml:"risk"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
	AllowOrigins    []string      `yaml:"allow_origins" default:"[\"*\"]"`
}

type LogConfig struct {
	Level     string          `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
	Format    string          `yaml:"format" default:"console" validate:"oneof=console json"`
	Output    string          `yaml:"output" default:"stdout"`
	Collector CollectorConfig `yaml:"collector"`
}

// CollectorConfig controls warning/error aggregation. With Publish set and
// Redis enabled, batches go out on the Topic channel.
type CollectorConfig struct {
	Enabled   bool          `yaml:"enabled" default:"true"`
	Interval  time.Duration `yaml:"interval" default:"30s"`
	Threshold int           `yaml:"threshold" default:"100" validate:"gte=1"`
	Retain    int           `yaml:"retain" default:"50" validate:"gte=0"`
	Publish   bool          `yaml:"publish"`
	Topic     string        `yaml:"topic" default:"trademind.logs"`
}

type MetricsConfig struct {
	Enabled       bool          `yaml:"enabled" default:"true"`
	Path          string        `yaml:"path" default:"/metrics"`
	SlowThreshold time.Duration `yaml:"slow_threshold" default:"1s"`
}

type ChartsConfig struct {
	Backend string `yaml:"backend" default:"chartjs" validate:"oneof=chartjs raster"`
	// Seed fixes the trading chart's random walk; 0 draws a fresh one per render.
	Seed      int64   `yaml:"seed" validate:"gte=0"`
	Width     int     `yaml:"width" default:"800" validate:"gte=100,lte=4000"`
	Height    int     `yaml:"height" default:"400" validate:"gte=100,lte=4000"`
	RiskValue float64 `yaml:"risk_value" default:"1" validate:"gte=0,lte=15"`
}

type CacheConfig struct {
	TTL         time.Duration `yaml:"ttl" default:"1h"`
	MemoryItems int           `yaml:"memory_items" default:"64" validate:"gte=1"`
	Redis       RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr" default:"localhost:6379" validate:"required_if=Enabled true"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix" default:"trademind"`
}

type RiskConfig struct {
	RateLimit struct {
		Capacity float64 `yaml:"capacity" default:"20" validate:"gte=1"`
		Refill   float64 `yaml:"refill" default:"5" validate:"gt=0"`
	} `yaml:"rate_limit"`
}

var validate = validator.New()

// Default returns a configuration made only of defaults.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("CHART_BACKEND"); v != "" {
		c.Charts.Backend = strings.ToLower(v)
	}
	if v := getenv("CHART_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHART_SEED: %w", err)
		}
		c.Charts.Seed = seed
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Log.Collector.Publish && !c.Cache.Redis.Enabled {
		return fmt.Errorf("log.collector.publish needs cache.redis.enabled")
	}
	return nil
}
