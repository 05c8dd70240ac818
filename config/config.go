package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	Pagination Pagination

	// Media configuration
	StorageBackend string
	MediaDir       string
	MediaURL       string
	S3BucketName   string
	AWSRegion      string

	// Short link configuration
	ShortURLSalt      string
	ShortURLMinLength int

	// RecipeCreateLimit is the number of recipes a user may create per hour.
	RecipeCreateLimit int

	LogLevel  string
	LogFormat string
}

// Pagination holds the page bounds shared by every listing endpoint.
type Pagination struct {
	MinPage         int
	DefaultPage     int
	DefaultPageSize int
	MaxPageSize     int
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Development, Test, Production:
		if err := loadFromEnvironment(cfg, env); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnvironment reads plain settings from environment variables and
// sensitive ones from environment variables or Docker secrets.
func loadFromEnvironment(cfg *Config, env Environment) error {
	var err error

	cfg.ServerPort = getEnv("SERVER_PORT", "8000")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBName = getEnv("DB_NAME", "foodgram")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.DBSQLitePath = getEnv("DB_SQLITE_PATH", "foodgram.db")
	cfg.DBPassword = readSecret("db_password")

	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.JWTSecret = readSecret("jwt_secret")
	if cfg.JWTSecret == "" && env == Test {
		cfg.JWTSecret = "test-secret"
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return err
	}

	if cfg.Pagination.MinPage, err = getInt("MIN_PAGE", 1); err != nil {
		return err
	}
	if cfg.Pagination.DefaultPage, err = getInt("DEFAULT_PAGE", 1); err != nil {
		return err
	}
	if cfg.Pagination.DefaultPageSize, err = getInt("DEFAULT_PAGE_SIZE", 6); err != nil {
		return err
	}
	if cfg.Pagination.MaxPageSize, err = getInt("MAX_PAGE_SIZE", 100); err != nil {
		return err
	}

	cfg.StorageBackend = getEnv("STORAGE_BACKEND", StorageLocal)
	cfg.MediaDir = getEnv("MEDIA_DIR", "media")
	cfg.MediaURL = strings.TrimRight(getEnv("MEDIA_URL", "/media"), "/")
	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "foodgram-media")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.ShortURLSalt = readSecret("short_url_salt")
	if cfg.ShortURLSalt == "" {
		cfg.ShortURLSalt = "foodgram"
	}
	if cfg.ShortURLMinLength, err = getInt("SHORT_URL_MIN_LENGTH", 5); err != nil {
		return err
	}

	if cfg.RecipeCreateLimit, err = getInt("RECIPE_CREATE_LIMIT", 30); err != nil {
		return err
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	defaultFormat := "console"
	if env == Production {
		defaultFormat = "json"
	}
	cfg.LogFormat = getEnv("LOG_FORMAT", defaultFormat)

	return nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// readSecret reads a sensitive value from its upper-cased environment variable,
// falling back to a Docker secret in the secrets directory.
func readSecret(name string) string {
	if v := os.Getenv(strings.ToUpper(name)); v != "" {
		return v
	}
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
