package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
}

var (
	// Environment-specific requirements. Development and test fall back to
	// defaults for everything except the JWT secret.
	requirements = map[Environment]ConfigRequirements{
		CI: {
			RequiredEnvVars: []string{
				"DB_HOST",
				"DB_NAME",
				"JWT_SECRET",
			},
		},
		Production: {
			RequiredEnvVars: []string{
				"SERVER_PORT",
				"DB_HOST",
				"DB_PORT",
				"DB_NAME",
				"DB_SSL_MODE",
				"REDIS_URL",
			},
		},
	}
)

// ValidateConfig checks the configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs []ValidationError

	for _, envVar := range requirements[env].RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			errs = append(errs, ValidationError{Field: envVar, Message: "required environment variable is not set"})
		}
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "jwt_secret", Message: "secret is required"})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "postgres requires host and database name"})
		}
		if env == Production && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "db_password", Message: "secret is required"})
		}
	case DriverSQLite:
		if cfg.DBSQLitePath == "" {
			errs = append(errs, ValidationError{Field: "DB_SQLITE_PATH", Message: "sqlite requires a database path"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	p := cfg.Pagination
	if p.MinPage < 1 {
		errs = append(errs, ValidationError{Field: "MIN_PAGE", Message: "must be at least 1"})
	}
	if p.DefaultPage < p.MinPage {
		errs = append(errs, ValidationError{Field: "DEFAULT_PAGE", Message: "must not be below MIN_PAGE"})
	}
	if p.DefaultPageSize < 1 {
		errs = append(errs, ValidationError{Field: "DEFAULT_PAGE_SIZE", Message: "must be at least 1"})
	}
	if p.MaxPageSize < p.DefaultPageSize {
		errs = append(errs, ValidationError{Field: "MAX_PAGE_SIZE", Message: "must not be below DEFAULT_PAGE_SIZE"})
	}

	switch cfg.StorageBackend {
	case StorageLocal:
		if cfg.MediaDir == "" {
			errs = append(errs, ValidationError{Field: "MEDIA_DIR", Message: "local storage requires a directory"})
		}
	case StorageS3:
		if cfg.S3BucketName == "" {
			errs = append(errs, ValidationError{Field: "S3_BUCKET_NAME", Message: "s3 storage requires a bucket"})
		}
	default:
		errs = append(errs, ValidationError{Field: "STORAGE_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.StorageBackend)})
	}

	if cfg.ShortURLMinLength < 0 {
		errs = append(errs, ValidationError{Field: "SHORT_URL_MIN_LENGTH", Message: "must not be negative"})
	}
	if cfg.RecipeCreateLimit < 1 {
		errs = append(errs, ValidationError{Field: "RECIPE_CREATE_LIMIT", Message: "must be at least 1"})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{Field: "TOKEN_TTL", Message: "must be positive"})
	}

	if len(errs) > 0 {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
