package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/lenarsag/foodgram/backend/internal/api"
	"github.com/lenarsag/foodgram/backend/internal/database"
	"github.com/lenarsag/foodgram/backend/internal/middleware"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/shorturl"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

// Dependencies are everything the route table is built from
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Auth        service.IAuthService
	Users       service.IUserService
	Recipes     service.IRecipeService
	Tags        service.ITagService
	Ingredients service.IIngredientService
	Links       *shorturl.Codec
	// Limiter throttles recipe creation; nil disables it.
	Limiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := types.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSOrigins),
		middleware.ErrorHandler(),
	)

	guards := api.Guards{
		Required: middleware.AuthMiddleware(deps.Auth),
		Optional: middleware.OptionalAuth(deps.Auth),
	}
	if deps.Limiter != nil {
		guards.RecipeCreation = deps.Limiter.RateLimitMiddleware()
	}
	pager := pagination.NewPager(deps.Config.Pagination)

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), deps.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.Config.StorageBackend == config.StorageLocal && strings.HasPrefix(deps.Config.MediaURL, "/") {
		router.Static(deps.Config.MediaURL, deps.Config.MediaDir)
	}

	v1 := router.Group("/api")
	api.NewAuthHandler(deps.Auth).RegisterRoutes(v1, guards)
	api.NewUserHandler(deps.Users, pager).RegisterRoutes(v1, guards)
	api.NewTagHandler(deps.Tags).RegisterRoutes(v1)
	api.NewIngredientHandler(deps.Ingredients).RegisterRoutes(v1)
	api.NewRecipeHandler(deps.Recipes, pager, deps.Links).RegisterRoutes(v1, guards)
	api.NewShortLinkHandler(deps.Recipes, deps.Links).RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "Not found"})
	})

	return router, nil
}
