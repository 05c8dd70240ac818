package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/lenarsag/foodgram/backend/internal/database"
	"github.com/lenarsag/foodgram/backend/internal/logging"
)

func main() {
	sqlDir := flag.String("sql-dir", "", "apply the *.sql files in this directory instead of auto-migrating")
	rollback := flag.Bool("rollback", false, "roll back the last SQL migration (requires -sql-dir)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if *sqlDir == "" {
		if *rollback {
			logging.Fatal().Msg("-rollback requires -sql-dir")
		}
		db, err := database.New(cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to database")
		}
		if err := database.Migrate(db); err != nil {
			logging.Fatal().Err(err).Msg("migration failed")
		}
		return
	}

	if cfg.DBDriver != config.DriverPostgres {
		logging.Fatal().Str("driver", cfg.DBDriver).Msg("SQL migrations are written for postgres")
	}
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if *rollback {
		name, err := database.RollbackLast(ctx, db, *sqlDir)
		if errors.Is(err, database.ErrNoMigrations) {
			logging.Info().Msg("nothing to roll back")
			return
		}
		if err != nil {
			logging.Fatal().Err(err).Msg("rollback failed")
		}
		logging.Info().Str("migration", name).Msg("rolled back migration")
		return
	}

	applied, err := database.ApplySQL(ctx, db, *sqlDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	logging.Info().Int("applied", len(applied)).Msg("all migrations applied")
}
