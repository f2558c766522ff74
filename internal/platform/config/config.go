package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DevSigningKey is the fallback caller token key for local development.
const DevSigningKey = "dev-secret-key-change-in-production"

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `env:"CHAINCERTS_ADDR" envDefault:":8080"`
	Environment    string        `env:"CHAINCERTS_ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	Wallet   WalletConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Token    TokenConfig
}

// WalletConfig selects the store backend and the registry policies.
type WalletConfig struct {
	StoreBackend       string        `env:"STORE_BACKEND" envDefault:"memory"`
	TxTimeout          time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
	RevokePolicy       string        `env:"REVOKE_POLICY" envDefault:"idempotent"`
	OwnerGate          bool          `env:"OWNER_GATE" envDefault:"true"`
	CallerVerification bool          `env:"CALLER_VERIFICATION" envDefault:"true"`
	AuditBufferSize    int           `env:"AUDIT_BUFFER_SIZE" envDefault:"256"`
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	KeyPrefix    string        `env:"REDIS_KEY_PREFIX" envDefault:"chaincerts"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig enables shipping audit events when Brokers is set.
type KafkaConfig struct {
	Brokers    string `env:"KAFKA_BROKERS"`
	AuditTopic string `env:"KAFKA_AUDIT_TOPIC" envDefault:"chaincerts.wallet.events"`
	Acks       string `env:"KAFKA_ACKS" envDefault:"all"`
}

type TokenConfig struct {
	SigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"chaincerts"`
	Audience   string        `env:"JWT_AUDIENCE" envDefault:"chaincerts-wallet"`
	TTL        time.Duration `env:"TOKEN_TTL" envDefault:"15m"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements env tags cannot express.
func (c Server) Validate() error {
	switch c.Wallet.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("STORE_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Wallet.StoreBackend)
	}
	if c.Wallet.TxTimeout <= 0 {
		return fmt.Errorf("TX_TIMEOUT must be positive")
	}
	if c.Wallet.AuditBufferSize < 0 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE cannot be negative")
	}
	if c.Token.SigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	return nil
}

// UsesDevSigningKey reports whether caller tokens are signed with the development key.
func (c Server) UsesDevSigningKey() bool {
	return c.Token.SigningKey == DevSigningKey
}
