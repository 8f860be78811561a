package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"

	// DefaultJWTSecret is only acceptable for local development.
	DefaultJWTSecret = "your-secret-key-change-in-production"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port            string        `env:"API_PORT" envDefault:"5000"`
	OpenAPISpecPath string        `env:"OPENAPI_SPEC_PATH" envDefault:"api/openapi.yaml"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	QRCacheSize     int           `env:"QR_CACHE_SIZE" envDefault:"256"`
}

type AuthConfig struct {
	Header    string        `env:"AUTH_HEADER" envDefault:"x-auth-token"`
	JWTSecret string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"360000s"`
}

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
}

type DatabaseConfig struct {
	PrimaryDSN      string        `env:"DB_PRIMARY_DSN"`
	ReplicaDSNs     []string      `env:"DB_REPLICA_DSNS" envSeparator:","`
	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns        int32         `env:"DB_MIN_CONNS" envDefault:"5"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	Migrate         bool          `env:"DB_MIGRATE" envDefault:"true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"contactkeeper"`
}

// ClientConfig is read by the terminal client only.
type ClientConfig struct {
	APIURL     string        `env:"CONTACTS_API_URL" envDefault:"http://localhost:5000"`
	AuthHeader string        `env:"AUTH_HEADER" envDefault:"x-auth-token"`
	Timeout    time.Duration `env:"CONTACTS_API_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Database.ReplicaDSNs = compact(cfg.Database.ReplicaDSNs)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadClient reads only the terminal client settings, so the client starts
// without any of the server's storage configuration.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("CONTACTS_API_URL must not be empty")
	}
	if cfg.AuthHeader == "" {
		return nil, fmt.Errorf("AUTH_HEADER must not be empty")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendPostgres:
		if c.Database.PrimaryDSN == "" {
			return fmt.Errorf("DB_PRIMARY_DSN is required for the %s backend", BackendPostgres)
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the %s backend", BackendMongo)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Storage.Backend != BackendMemory && (c.Auth.JWTSecret == "" || c.UsesDefaultSecret()) {
		return fmt.Errorf("JWT_SECRET must be set for the %s backend", c.Storage.Backend)
	}
	if c.Auth.Header == "" {
		return fmt.Errorf("AUTH_HEADER must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %v", c.Auth.TokenTTL)
	}

	return nil
}

// UsesDefaultSecret reports whether JWT_SECRET was left at its development value.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == DefaultJWTSecret
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
