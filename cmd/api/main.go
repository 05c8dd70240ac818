package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/lenarsag/foodgram/backend/internal/database"
	"github.com/lenarsag/foodgram/backend/internal/logging"
	"github.com/lenarsag/foodgram/backend/internal/middleware"
	"github.com/lenarsag/foodgram/backend/internal/router"
	"github.com/lenarsag/foodgram/backend/internal/server"
	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/shorturl"
	"github.com/lenarsag/foodgram/backend/internal/storage"
)

func main() {
	// A missing .env is fine outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("failed to read .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	var (
		denylist *database.TokenDenylist
		limiter  *middleware.RateLimiter
	)
	redisClient, err := database.NewRedisClient(cfg)
	switch {
	case errors.Is(err, database.ErrRedisNotConfigured):
		logging.Info().Msg("redis not configured; token revocation and rate limiting disabled")
	case err != nil:
		logging.Warn().Err(err).Msg("redis unavailable; token revocation and rate limiting disabled")
	default:
		defer redisClient.Close()
		denylist = database.NewTokenDenylist(redisClient)
		limiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeCreateLimit)
	}

	images, err := storage.New(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize image storage")
	}
	links, err := shorturl.NewCodec(cfg.ShortURLSalt, cfg.ShortURLMinLength)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize short links")
	}

	handler, err := router.SetupRouter(router.Dependencies{
		Config:      cfg,
		DB:          db,
		Auth:        service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, denylist),
		Users:       service.NewUserService(db, images),
		Recipes:     service.NewRecipeService(db, images),
		Tags:        service.NewTagService(db),
		Ingredients: service.NewIngredientService(db),
		Links:       links,
		Limiter:     limiter,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to set up routes")
	}

	if err := server.New(cfg, handler).Start(ctx); err != nil {
		logging.Fatal().Err(err).Msg("server error")
	}
	logging.Info().Msg("server stopped")
}
