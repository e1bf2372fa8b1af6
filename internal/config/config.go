package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logger      LoggerConfig      `yaml:"logger"`
	Database    DatabaseConfig    `yaml:"database"`
	Negotiation NegotiationConfig `yaml:"negotiation"`
	Kafka       KafkaConfig       `yaml:"kafka"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	DBName          string        `yaml:"name" env:"DB_NAME" env-default:"marketplace"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
}

// NegotiationConfig bounds the compare-and-swap retry loop and store calls
type NegotiationConfig struct {
	MaxSwapAttempts      int           `yaml:"max_swap_attempts" env:"NEGOTIATION_MAX_SWAP_ATTEMPTS" env-default:"5"`
	StoreTimeout         time.Duration `yaml:"store_timeout" env:"NEGOTIATION_STORE_TIMEOUT" env-default:"2s"`
	RetryInitialInterval time.Duration `yaml:"retry_initial_interval" env:"NEGOTIATION_RETRY_INITIAL_INTERVAL" env-default:"10ms"`
	RetryMaxInterval     time.Duration `yaml:"retry_max_interval" env:"NEGOTIATION_RETRY_MAX_INTERVAL" env-default:"200ms"`
	IdempotencyTTL       time.Duration `yaml:"idempotency_ttl" env:"NEGOTIATION_IDEMPOTENCY_TTL" env-default:"24h"`
}

// KafkaConfig holds domain event publishing configuration
type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	Topic        string        `yaml:"topic" env:"KAFKA_TOPIC" env-default:"marketplace.transactions"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"5s"`
	Enabled      bool          `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"` // debug, info, warn, error
}

// Load reads a .env file if present, then the YAML file named by CONFIG_PATH
// if set, then the environment. Environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if c.Negotiation.MaxSwapAttempts < 1 {
		return fmt.Errorf("max swap attempts must be at least 1, got %d", c.Negotiation.MaxSwapAttempts)
	}
	if c.Negotiation.StoreTimeout <= 0 {
		return fmt.Errorf("store timeout must be positive")
	}
	if c.Negotiation.RetryMaxInterval < c.Negotiation.RetryInitialInterval {
		return fmt.Errorf("retry max interval (%s) must be >= initial interval (%s)",
			c.Negotiation.RetryMaxInterval, c.Negotiation.RetryInitialInterval)
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka topic cannot be empty when kafka is enabled")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
