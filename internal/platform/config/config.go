// Package config loads the ledger's deployment configuration from an
// optional YAML file with environment variable overrides, so main stays
// lean.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/validate"
)

// Config captures everything the server binary needs to start.
type Config struct {
	Addr          string        `yaml:"addr"`
	LogLevel      string        `yaml:"log_level"`
	JWTSigningKey string        `yaml:"jwt_signing_key"`
	TokenIssuer   string        `yaml:"token_issuer"`
	TokenTTL      time.Duration `yaml:"token_ttl"`

	// EventLogPath is the SQLite file backing the append-only log. Empty
	// selects the in-memory log (useful for tests and demos, not durable).
	EventLogPath string `yaml:"event_log_path"`

	// KafkaBrokers enables event fan-out when non-empty.
	KafkaBrokers string `yaml:"kafka_brokers"`
	KafkaTopic   string `yaml:"kafka_topic"`

	RebuildInterval time.Duration `yaml:"rebuild_interval"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`

	// Validation bounds. These are deployment values, not wire-format
	// constants: changing them never breaks stored data.
	MaxBatchSize    int   `yaml:"max_batch_size"`
	MaxStringLength int   `yaml:"max_string_length"`
	MaxTimestamp    int64 `yaml:"max_timestamp"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	limits := validate.DefaultLimits()
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		JWTSigningKey:   "dev-secret-key-change-in-production",
		TokenIssuer:     "healthchains-ledger",
		TokenTTL:        15 * time.Minute,
		KafkaTopic:      "consent-ledger-events",
		RebuildInterval: 30 * time.Second,
		RequestTimeout:  30 * time.Second,
		MaxBatchSize:    limits.MaxBatchSize,
		MaxStringLength: limits.MaxStringLength,
		MaxTimestamp:    limits.MaxTimestamp,
	}
}

// Load reads the YAML file at path (skipped when path is empty), then
// applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.MaxBatchSize < 1 {
		return Config{}, fmt.Errorf("max_batch_size must be at least 1, got %d", cfg.MaxBatchSize)
	}
	if cfg.MaxStringLength < 1 {
		return Config{}, fmt.Errorf("max_string_length must be at least 1, got %d", cfg.MaxStringLength)
	}
	return cfg, nil
}

// Limits extracts the validation bounds in the form the service consumes.
func (c Config) Limits() validate.Limits {
	return validate.Limits{
		MaxBatchSize:    c.MaxBatchSize,
		MaxStringLength: c.MaxStringLength,
		MaxTimestamp:    c.MaxTimestamp,
	}
}

func applyEnv(cfg *Config) {
	setString("LEDGER_ADDR", &cfg.Addr)
	setString("LEDGER_LOG_LEVEL", &cfg.LogLevel)
	setString("LEDGER_JWT_SIGNING_KEY", &cfg.JWTSigningKey)
	setString("LEDGER_TOKEN_ISSUER", &cfg.TokenIssuer)
	setString("LEDGER_EVENT_LOG_PATH", &cfg.EventLogPath)
	setString("LEDGER_KAFKA_BROKERS", &cfg.KafkaBrokers)
	setString("LEDGER_KAFKA_TOPIC", &cfg.KafkaTopic)
	setDuration("LEDGER_TOKEN_TTL", &cfg.TokenTTL)
	setDuration("LEDGER_REBUILD_INTERVAL", &cfg.RebuildInterval)
	setDuration("LEDGER_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	setInt("LEDGER_MAX_BATCH_SIZE", &cfg.MaxBatchSize)
	setInt("LEDGER_MAX_STRING_LENGTH", &cfg.MaxStringLength)
	setInt64("LEDGER_MAX_TIMESTAMP", &cfg.MaxTimestamp)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(key string, dst *int64) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
