// Package config provides centralized configuration management for the
// viewer. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Source  SourceConfig
	Auth    AuthConfig
	Table   TableConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout per request (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// TrustedProxies are CIDRs whose X-Real-IP/X-Forwarded-For headers are
	// honored; empty means client IPs come from the connection itself
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// SourceConfig holds CSV data source settings.
type SourceConfig struct {
	// Location is the CSV source: a file path or an http(s) URL (required).
	// Supports both SOURCE_PATH and SOURCE_URL for compatibility.
	Location string `env:"SOURCE_PATH" envAlt:"SOURCE_URL" required:"true"`

	// FetchTimeout bounds a single HTTP fetch of the source (default: 30s)
	FetchTimeout time.Duration `env:"SOURCE_FETCH_TIMEOUT" default:"30s"`
}

// AuthConfig holds the session gate settings.
//
// The gate is a UI convenience, not a security mechanism: the secret is
// plain server configuration shared by every viewer, there are no
// accounts, and sessions live in process memory. Leave Password empty to
// disable the gate entirely.
type AuthConfig struct {
	// Password is the shared gate secret (default: empty, gate disabled)
	Password string `env:"AUTH_PASSWORD"`

	// SessionTTL is how long a session cookie stays valid (default: 12h)
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" default:"12h"`
}

// TableConfig holds table presentation defaults.
type TableConfig struct {
	// DefaultPageSize is the initial rows-per-page (default: 25)
	DefaultPageSize int `env:"TABLE_DEFAULT_PAGE_SIZE" default:"25"`

	// PageSizeOptions are the selectable page sizes; the "all" option is
	// always offered on top of these (default: 10,25,50,100)
	PageSizeOptions []int `env:"TABLE_PAGE_SIZE_OPTIONS" default:"10,25,50,100"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP rate limit (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// GateEnabled reports whether the password gate is active.
func (c *AuthConfig) GateEnabled() bool {
	return c.Password != ""
}

// ValidPageSize reports whether n is one of the configured page sizes.
func (c *TableConfig) ValidPageSize(n int) bool {
	for _, opt := range c.PageSizeOptions {
		if n == opt {
			return true
		}
	}
	return false
}
