package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
	Auth     AuthConfig     `koanf:"auth"`
	S3       S3Config       `koanf:"s3"`
	Seed     SeedConfig     `koanf:"seed"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Database        string `koanf:"name"`
	MaxConnections  int    `koanf:"maxConnections"`
	MinConnections  int    `koanf:"minConnections"`
	MaxConnLifetime int    `koanf:"maxConnLifetime"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

// AuthConfig holds credential signing and password hashing configuration.
type AuthConfig struct {
	JWTSecret  string        `koanf:"jwtSecret"`
	TokenTTL   time.Duration `koanf:"tokenTTL"`
	BcryptCost int           `koanf:"bcryptCost"`
}

// S3Config holds AWS S3 configuration for product images and seed files.
type S3Config struct {
	Enabled   bool   `koanf:"enabled"`
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
	Prefix    string `koanf:"prefix"`    // Key prefix for uploaded images (e.g., "images/")
	PublicURL string `koanf:"publicURL"` // Base URL objects are served from; defaults to the bucket endpoint
}

// SeedConfig holds configuration for the catalogue seeder.
type SeedConfig struct {
	Files         []string `koanf:"files"`
	AdminName     string   `koanf:"adminName"`
	AdminEmail    string   `koanf:"adminEmail"`
	AdminPassword string   `koanf:"adminPassword"`
}

// envKeys maps environment variables onto configuration paths.
var envKeys = map[string]string{
	"SERVER_HOST":          "server.host",
	"SERVER_PORT":          "server.port",
	"DB_HOST":              "database.host",
	"DB_PORT":              "database.port",
	"DB_USER":              "database.user",
	"DB_PASSWORD":          "database.password",
	"DB_NAME":              "database.name",
	"DB_MAX_CONNECTIONS":   "database.maxConnections",
	"DB_MIN_CONNECTIONS":   "database.minConnections",
	"DB_MAX_CONN_LIFETIME": "database.maxConnLifetime",
	"LOG_LEVEL":            "logger.level",
	"LOG_FORMAT":           "logger.format",
	"JWT_SECRET":           "auth.jwtSecret",
	"JWT_TTL":              "auth.tokenTTL",
	"BCRYPT_COST":          "auth.bcryptCost",
	"S3_ENABLED":           "s3.enabled",
	"S3_BUCKET":            "s3.bucket",
	"S3_REGION":            "s3.region",
	"S3_PREFIX":            "s3.prefix",
	"S3_PUBLIC_URL":        "s3.publicURL",
	"SEED_FILES":           "seed.files",
	"SEED_ADMIN_NAME":      "seed.adminName",
	"SEED_ADMIN_EMAIL":     "seed.adminEmail",
	"SEED_ADMIN_PASSWORD":  "seed.adminPassword",
}

// Default returns the configuration used when nothing overrides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Database:        "storefront",
			MaxConnections:  25,
			MinConnections:  5,
			MaxConnLifetime: 300,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			TokenTTL:   40 * time.Hour,
			BcryptCost: 10,
		},
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "images/",
		},
		Seed: SeedConfig{
			Files:      []string{"data/products.jsonl.gz"},
			AdminName:  "Admin User",
			AdminEmail: "admin@example.com",
		},
	}
}

// Load loads configuration from the optional YAML file named by CONFIG_FILE,
// then from environment variables.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile loads configuration from path (skipped when empty) overlaid with
// environment variables.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{TransformFunc: transformEnv}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// transformEnv maps a known environment variable to its configuration path.
// Unknown and empty variables are dropped.
func transformEnv(key, value string) (string, any) {
	path, ok := envKeys[key]
	if !ok || value == "" {
		return "", nil
	}
	if path == "seed.files" {
		return path, splitList(value)
	}
	return path, value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost: %d (must be between 4 and 31)", c.Auth.BcryptCost)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ObjectURL returns the public URL for an object key.
func (c *S3Config) ObjectURL(key string) string {
	base := c.PublicURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
	return strings.TrimRight(base, "/") + "/" + key
}
