// Package config defines the top-level configuration for the dashboard
// service and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by OVERTIME_* environment
// variables.
type Config struct {
	Thales   ThalesConfig   `toml:"thales"`
	Flipside FlipsideConfig `toml:"flipside"`
	Cache    CacheConfig    `toml:"cache"`
	Redis    RedisConfig    `toml:"redis"`
	Server   ServerConfig   `toml:"server"`
	Mode     string         `toml:"mode"`
	LogLevel string         `toml:"log_level"`
}

// ThalesConfig holds the subgraph endpoint for market metadata.
type ThalesConfig struct {
	SubgraphURL string `toml:"subgraph_url"`
	// MaxMarkets bounds the sportMarkets query ("first" parameter).
	MaxMarkets int `toml:"max_markets"`
}

// FlipsideConfig holds the pre-built analytics query endpoints.
type FlipsideConfig struct {
	// TransactionsURL serves the 14-day betting transaction window.
	TransactionsURL string `toml:"transactions_url"`
	// TokensURL serves the pre-aggregated collateral token volume table.
	TokensURL string `toml:"tokens_url"`
}

// CacheConfig selects the dataset cache backend and its expiry window.
type CacheConfig struct {
	// Backend is "memory" (in-process, the default) or "redis".
	Backend string   `toml:"backend"`
	TTL     duration `toml:"ttl"`
}

// RedisConfig holds Redis connection parameters, used when the cache
// backend is "redis".
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "24h", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "24h".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with the endpoints and cache policy
// the public dashboard runs with.
func Defaults() Config {
	return Config{
		Thales: ThalesConfig{
			SubgraphURL: "https://api.thegraph.com/subgraphs/name/thales-markets/thales-markets-v2",
			MaxMarkets:  1000,
		},
		Flipside: FlipsideConfig{
			TransactionsURL: "https://node-api.flipsidecrypto.com/api/v2/queries/41354585-bc94-4303-bb9f-78934bf5ff9c/data/latest",
			TokensURL:       "https://node-api.flipsidecrypto.com/api/v2/queries/d84e4333-5633-46a0-83e5-281b8b3074cd/data/latest",
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     duration{24 * time.Hour},
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   10,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		Server: ServerConfig{
			Port:        8000,
			CORSOrigins: []string{"*"},
		},
		Mode:     "serve",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"serve": true,
	"once":  true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validCacheBackends enumerates the accepted values for Cache.Backend.
var validCacheBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Validate checks Config for obviously invalid or missing values and
// returns a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: serve, once)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Thales.SubgraphURL == "" {
		errs = append(errs, "thales: subgraph_url must not be empty")
	}
	if c.Thales.MaxMarkets < 1 || c.Thales.MaxMarkets > 1000 {
		errs = append(errs, fmt.Sprintf("thales: max_markets must be 1-1000, got %d", c.Thales.MaxMarkets))
	}

	if c.Flipside.TransactionsURL == "" {
		errs = append(errs, "flipside: transactions_url must not be empty")
	}
	if c.Flipside.TokensURL == "" {
		errs = append(errs, "flipside: tokens_url must not be empty")
	}

	if !validCacheBackends[strings.ToLower(c.Cache.Backend)] {
		errs = append(errs, fmt.Sprintf("cache: unknown backend %q (valid: memory, redis)", c.Cache.Backend))
	}
	if c.Cache.TTL.Duration <= 0 {
		errs = append(errs, "cache: ttl must be positive")
	}

	if strings.ToLower(c.Cache.Backend) == "redis" {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when cache backend is redis")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if strings.ToLower(c.Mode) == "serve" {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
