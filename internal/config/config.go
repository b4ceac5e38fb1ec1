// Package config defines the configuration of the markets RPC service and
// its validation.
package config

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"
)

// Config is the root configuration. Fields are populated from a TOML file
// and then optionally overridden by MARKETSRPC_* environment variables.
type Config struct {
	LogLevel  string          `toml:"log_level"`
	Store     StoreConfig     `toml:"store"`
	Server    ServerConfig    `toml:"server"`
	Dispatch  DispatchConfig  `toml:"dispatch"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// StoreConfig selects the query backend. The memory backend serves a JSON
// fixture and is meant for local runs and demos.
type StoreConfig struct {
	Backend     string `toml:"backend"`
	FixturePath string `toml:"fixture_path"`
}

// ServerConfig holds gRPC listener settings.
type ServerConfig struct {
	BindAddress     string   `toml:"bind_address"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
	MaxRecvMsgBytes int      `toml:"max_recv_msg_bytes"`
	Reflection      bool     `toml:"reflection"`
}

// DispatchConfig sizes the store worker queue.
type DispatchConfig struct {
	QueueDepth int `toml:"queue_depth"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters. Redis is only dialed when
// the rate limiter uses it.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	KeyPrefix  string `toml:"key_prefix"`
}

// RateLimitConfig configures per-peer request limiting. TrustedProxies are
// CIDRs or addresses allowed to report the client address through
// x-forwarded-for or x-real-ip; empty trusts nobody.
type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	Backend        string   `toml:"backend"`
	Requests       int      `toml:"requests"`
	Window         duration `toml:"window"`
	Burst          int      `toml:"burst"`
	TrustedProxies []string `toml:"trusted_proxies"`
}

// duration lets TOML carry values like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	LimiterLocal = "local"
	LimiterRedis = "redis"
)

// Defaults returns a Config with every field at its default.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Backend: BackendPostgres,
		},
		Server: ServerConfig{
			BindAddress:     "0.0.0.0:50051",
			ShutdownTimeout: duration{10 * time.Second},
			MaxRecvMsgBytes: 4 << 20,
			Reflection:      true,
		},
		Dispatch: DispatchConfig{
			QueueDepth: 64,
		},
		Postgres: PostgresConfig{
			Host:         "localhost",
			Port:         5432,
			Database:     "markets",
			User:         "markets",
			SSLMode:      "disable",
			PoolMaxConns: 10,
			PoolMinConns: 1,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			PoolSize:   10,
			MaxRetries: 3,
			KeyPrefix:  "marketsrpc:",
		},
		RateLimit: RateLimitConfig{
			Backend:  LimiterLocal,
			Requests: 100,
			Window:   duration{time.Second},
		},
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 {
			errs = append(errs, "postgres: pool_min_conns must be >= 0")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	case BackendMemory:
		if c.Store.FixturePath == "" {
			errs = append(errs, "store: fixture_path is required for the memory backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("store: unknown backend %q (valid: postgres, memory)", c.Store.Backend))
	}

	if _, port, err := net.SplitHostPort(c.Server.BindAddress); err != nil || port == "" {
		errs = append(errs, fmt.Sprintf("server: bind_address must be host:port, got %q", c.Server.BindAddress))
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		errs = append(errs, "server: shutdown_timeout must be > 0")
	}
	if c.Server.MaxRecvMsgBytes < 0 {
		errs = append(errs, "server: max_recv_msg_bytes must be >= 0")
	}
	if c.Dispatch.QueueDepth < 0 {
		errs = append(errs, "dispatch: queue_depth must be >= 0")
	}

	if c.RateLimit.Enabled {
		switch c.RateLimit.Backend {
		case LimiterLocal:
		case LimiterRedis:
			if c.Redis.Addr == "" {
				errs = append(errs, "redis: addr must not be empty when rate_limit.backend is redis")
			}
			if c.Redis.PoolSize < 1 {
				errs = append(errs, "redis: pool_size must be >= 1")
			}
		default:
			errs = append(errs, fmt.Sprintf("rate_limit: unknown backend %q (valid: local, redis)", c.RateLimit.Backend))
		}
		if c.RateLimit.Requests < 1 {
			errs = append(errs, "rate_limit: requests must be >= 1")
		}
		if c.RateLimit.Window.Duration <= 0 {
			errs = append(errs, "rate_limit: window must be > 0")
		}
		if c.RateLimit.Burst < 0 {
			errs = append(errs, "rate_limit: burst must be >= 0")
		}
		for _, p := range c.RateLimit.TrustedProxies {
			if !validProxy(p) {
				errs = append(errs, fmt.Sprintf("rate_limit: trusted_proxies entry %q is not an address or CIDR", p))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validProxy(s string) bool {
	s = strings.TrimSpace(s)
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}
