package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/lenarsag/foodgram/backend/internal/database"
	"github.com/lenarsag/foodgram/backend/internal/logging"
)

func main() {
	file := flag.String("file", "data/reference.yaml", "YAML file with tags and ingredients")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	data, err := database.LoadReferenceData(*file)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load reference data")
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	if _, _, err := database.SeedReference(context.Background(), db, data); err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}
}
