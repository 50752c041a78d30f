package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"bad mode", func(c *Config) { c.Mode = "stream" }, "unknown mode"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "unknown log_level"},
		{"missing subgraph url", func(c *Config) { c.Thales.SubgraphURL = "" }, "subgraph_url"},
		{"max markets too high", func(c *Config) { c.Thales.MaxMarkets = 5000 }, "max_markets"},
		{"missing transactions url", func(c *Config) { c.Flipside.TransactionsURL = "" }, "transactions_url"},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "disk" }, "unknown backend"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = duration{0} }, "ttl must be positive"},
		{"redis backend without addr", func(c *Config) {
			c.Cache.Backend = "redis"
			c.Redis.Addr = ""
		}, "redis: addr"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "port must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), *cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
mode = "once"
log_level = "debug"

[cache]
backend = "redis"
ttl = "6h"

[server]
port = 9100
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "once", cfg.Mode)
		assert.Equal(t, "redis", cfg.Cache.Backend)
		assert.Equal(t, 6*time.Hour, cfg.Cache.TTL.Duration)
		assert.Equal(t, 9100, cfg.Server.Port)
		// Untouched sections keep their defaults.
		assert.Equal(t, Defaults().Thales.SubgraphURL, cfg.Thales.SubgraphURL)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("OVERTIME_MODE", "once")
		t.Setenv("OVERTIME_CACHE_TTL", "1h")
		t.Setenv("OVERTIME_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, "once", cfg.Mode)
		assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	})
}
