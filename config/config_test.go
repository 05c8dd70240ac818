package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "foodgram")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "foodgram_test")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("DEFAULT_PAGE_SIZE", "10")
	t.Setenv("MAX_PAGE_SIZE", "50")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "foodgram", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "foodgram_test", cfg.DBName)
	assert.Equal(t, "jwt", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, Pagination{MinPage: 1, DefaultPage: 1, DefaultPageSize: 10, MaxPageSize: 50}, cfg.Pagination)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.DSN(), "dbname=foodgram_test")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "JWT_SECRET", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE", "STORAGE_BACKEND", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 6, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestReadSecretFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "")

	assert.Equal(t, "from-file", readSecret("jwt_secret"))

	t.Setenv("JWT_SECRET", "from-env")
	assert.Equal(t, "from-env", readSecret("jwt_secret"))
}

func TestLoadConfigInvalidInteger(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("MAX_PAGE_SIZE", "lots")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "MAX_PAGE_SIZE must be an integer")
}

func TestValidateConfigReportsAllProblems(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")

	cfg := &Config{
		DBDriver:          "mysql",
		Pagination:        Pagination{MinPage: 0, DefaultPage: 1, DefaultPageSize: 20, MaxPageSize: 10},
		StorageBackend:    "ftp",
		RecipeCreateLimit: 1,
		TokenTTL:          time.Hour,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	for _, field := range []string{"jwt_secret", "DB_DRIVER", "MIN_PAGE", "MAX_PAGE_SIZE", "STORAGE_BACKEND"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidateConfigSQLite(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")

	cfg := &Config{
		DBDriver:          DriverSQLite,
		DBSQLitePath:      ":memory:",
		JWTSecret:         "x",
		Pagination:        Pagination{MinPage: 1, DefaultPage: 1, DefaultPageSize: 6, MaxPageSize: 100},
		StorageBackend:    StorageLocal,
		MediaDir:          "media",
		RecipeCreateLimit: 30,
		TokenTTL:          time.Hour,
	}
	assert.NoError(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "prod")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestObjectURL(t *testing.T) {
	s := &S3Config{BucketName: "media", Region: "eu-west-1"}
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/recipes/a.png", s.ObjectURL("recipes/a.png"))

	s.Region = ""
	assert.Equal(t, "https://media.s3.amazonaws.com/recipes/a.png", s.ObjectURL("recipes/a.png"))
}
