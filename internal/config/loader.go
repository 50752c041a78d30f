package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies OVERTIME_* environment variable overrides, and
// returns the final Config. A missing file is not an error; the defaults
// plus environment are enough to run against the public endpoints. The
// returned Config has NOT been validated; the caller should invoke
// Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known OVERTIME_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators point the service at alternate endpoints without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Thales.SubgraphURL, "OVERTIME_THALES_SUBGRAPH_URL")
	setInt(&cfg.Thales.MaxMarkets, "OVERTIME_THALES_MAX_MARKETS")

	setStr(&cfg.Flipside.TransactionsURL, "OVERTIME_FLIPSIDE_TRANSACTIONS_URL")
	setStr(&cfg.Flipside.TokensURL, "OVERTIME_FLIPSIDE_TOKENS_URL")

	setStr(&cfg.Cache.Backend, "OVERTIME_CACHE_BACKEND")
	setDuration(&cfg.Cache.TTL, "OVERTIME_CACHE_TTL")

	setStr(&cfg.Redis.Addr, "OVERTIME_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "OVERTIME_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "OVERTIME_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "OVERTIME_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "OVERTIME_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "OVERTIME_REDIS_TLS_ENABLED")

	setInt(&cfg.Server.Port, "OVERTIME_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "OVERTIME_SERVER_CORS_ORIGINS")

	setStr(&cfg.Mode, "OVERTIME_MODE")
	setStr(&cfg.LogLevel, "OVERTIME_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
