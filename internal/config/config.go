// Package config loads the process configuration from environment
// variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration of the gateway process.
type Config struct {
	// Port is the HTTP listen port.
	Port string `envconfig:"PORT" default:"8080"`

	// Environment selects deployment behavior. The value "development"
	// enables the webhook simulation endpoint.
	Environment string `envconfig:"ENVIRONMENT" default:"production"`

	// LogLevel is the minimum level emitted by the logger.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// TelemetryEnabled wires the OpenTelemetry providers when set. The
	// OTLP endpoint itself is configured through the standard OTEL_*
	// environment variables.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`

	// BlockCypherToken authenticates every provider call.
	BlockCypherToken string `envconfig:"BLOCKCYPHER_TOKEN" required:"true"`

	// DefaultNetwork is the network used by CLI commands when none is
	// given.
	DefaultNetwork string `envconfig:"DEFAULT_NETWORK" default:"btc-testnet"`

	// ProviderTimeout bounds each provider HTTP request.
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`

	// ProviderRetryMax is the number of transport-level retries per
	// provider request.
	ProviderRetryMax int `envconfig:"PROVIDER_RETRY_MAX" default:"2"`

	// JWTSecret signs API bearer tokens.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// PostgresDSN points at the ledger database.
	PostgresDSN string `envconfig:"POSTGRES_DSN" required:"true"`

	// RedisAddr, when set, selects the Redis-backed transaction status
	// store instead of the in-memory one.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
