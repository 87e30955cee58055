package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the FinGame server configuration.
type Config struct {
	// Server settings
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding     string        `envconfig:"LOG_ENCODING" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Story content
	ContentFile string `envconfig:"CONTENT_FILE" default:"data/stories.json"`
	// SessionHistoryLimit caps the rollback stack per session.
	SessionHistoryLimit int `envconfig:"SESSION_HISTORY_LIMIT" default:"100"`

	// PostgreSQL settings. Leaving DB_HOST empty runs the server on the
	// in-memory session store (development only, state is lost on restart).
	DBHost        string        `envconfig:"DB_HOST"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"finsakhi"`
	DBName        string        `envconfig:"DB_NAME" default:"finsakhi"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Secret field, loaded separately (no envconfig tag on purpose)
	DBPassword string

	// Redis session cache. Empty address disables the cache.
	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	SessionCacheTTL time.Duration `envconfig:"SESSION_CACHE_TTL" default:"30m"`
}

// UsesPostgres reports whether a database connection is configured.
func (c *Config) UsesPostgres() bool {
	return c.DBHost != ""
}

// UsesRedis reports whether the session cache is configured.
func (c *Config) UsesRedis() bool {
	return c.RedisAddr != ""
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig loads configuration from environment variables and secret files.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.UsesPostgres() {
		password, err := readSecret("db_password", "DB_PASSWORD")
		if err != nil {
			return nil, err
		}
		cfg.DBPassword = password
	}

	return &cfg, nil
}

// readSecret reads a secret from the standard Docker Secrets path, falling
// back to an environment variable for non-container setups.
func readSecret(secretName, envKey string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	if secretBytes, err := os.ReadFile(filePath); err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret != "" {
			return secret, nil
		}
	}
	if secret := os.Getenv(envKey); secret != "" {
		return secret, nil
	}
	return "", fmt.Errorf("secret %s not found: no readable %s and %s is unset", secretName, filePath, envKey)
}
