package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load merges the TOML file at path (skipped when path is empty) over the
// defaults, loads a .env file if one exists, and applies MARKETSRPC_*
// environment overrides. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// applyEnvOverrides overwrites fields whose MARKETSRPC_* variable is set and
// non-empty.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.LogLevel, "MARKETSRPC_LOG_LEVEL")

	setStr(&cfg.Store.Backend, "MARKETSRPC_STORE_BACKEND")
	setStr(&cfg.Store.FixturePath, "MARKETSRPC_STORE_FIXTURE_PATH")

	setStr(&cfg.Server.BindAddress, "MARKETSRPC_SERVER_BIND_ADDRESS")
	setDuration(&cfg.Server.ShutdownTimeout, "MARKETSRPC_SERVER_SHUTDOWN_TIMEOUT")
	setInt(&cfg.Server.MaxRecvMsgBytes, "MARKETSRPC_SERVER_MAX_RECV_MSG_BYTES")
	setBool(&cfg.Server.Reflection, "MARKETSRPC_SERVER_REFLECTION")

	setInt(&cfg.Dispatch.QueueDepth, "MARKETSRPC_DISPATCH_QUEUE_DEPTH")

	setStr(&cfg.Postgres.DSN, "MARKETSRPC_POSTGRES_DSN")
	setStr(&cfg.Postgres.DSN, "DATABASE_URL")
	setStr(&cfg.Postgres.Host, "MARKETSRPC_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "MARKETSRPC_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "MARKETSRPC_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "MARKETSRPC_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "MARKETSRPC_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "MARKETSRPC_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "MARKETSRPC_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "MARKETSRPC_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "MARKETSRPC_POSTGRES_RUN_MIGRATIONS")

	setStr(&cfg.Redis.Addr, "MARKETSRPC_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MARKETSRPC_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MARKETSRPC_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "MARKETSRPC_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "MARKETSRPC_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "MARKETSRPC_REDIS_TLS_ENABLED")
	setStr(&cfg.Redis.KeyPrefix, "MARKETSRPC_REDIS_KEY_PREFIX")

	setBool(&cfg.RateLimit.Enabled, "MARKETSRPC_RATE_LIMIT_ENABLED")
	setStr(&cfg.RateLimit.Backend, "MARKETSRPC_RATE_LIMIT_BACKEND")
	setInt(&cfg.RateLimit.Requests, "MARKETSRPC_RATE_LIMIT_REQUESTS")
	setDuration(&cfg.RateLimit.Window, "MARKETSRPC_RATE_LIMIT_WINDOW")
	setInt(&cfg.RateLimit.Burst, "MARKETSRPC_RATE_LIMIT_BURST")
	setList(&cfg.RateLimit.TrustedProxies, "MARKETSRPC_RATE_LIMIT_TRUSTED_PROXIES")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setList splits a comma-separated value.
func setList(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*dst = out
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
