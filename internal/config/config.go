package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the CropSense server.
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Source    SourceConfig
	Geocoder  GeocoderConfig
	Catalog   CatalogConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// RedisConfig is optional; with an empty URL the server falls back to
// an in-process cache.
type RedisConfig struct {
	URL string
}

type CacheConfig struct {
	ReportTTL time.Duration
}

type SourceConfig struct {
	Timeout time.Duration
	Seed    int64
}

type GeocoderConfig struct {
	APIKey string
}

// CatalogConfig points at an optional JSON crop catalog; empty means
// the built-in catalog.
type CatalogConfig struct {
	Path string
}

type SchedulerConfig struct {
	MarketRefreshInterval time.Duration
}

// Load reads configuration from the environment (and a .env file when
// present) and returns a validated Config. Every value has a default,
// so a bare environment boots a working server.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("CROPSENSE_PORT", 8080),
			Env:  envString("CROPSENSE_ENV", "development"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Cache: CacheConfig{
			ReportTTL: envDuration("CACHE_TTL", 5*time.Minute),
		},
		Source: SourceConfig{
			Timeout: envDuration("SOURCE_TIMEOUT", 3*time.Second),
			Seed:    envInt64("SOURCE_SEED", time.Now().UnixNano()),
		},
		Geocoder: GeocoderConfig{
			APIKey: os.Getenv("GEOCODER_API_KEY"),
		},
		Catalog: CatalogConfig{
			Path: os.Getenv("CROP_CATALOG_PATH"),
		},
		Scheduler: SchedulerConfig{
			MarketRefreshInterval: envDuration("MARKET_REFRESH_INTERVAL", 15*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("CROPSENSE_PORT must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Cache.ReportTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.ReportTTL)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive, got %s", c.Source.Timeout)
	}
	if c.Scheduler.MarketRefreshInterval < time.Minute {
		return fmt.Errorf("MARKET_REFRESH_INTERVAL must be at least 1m, got %s", c.Scheduler.MarketRefreshInterval)
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
