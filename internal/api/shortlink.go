package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/shorturl"
)

// ShortLinkHandler resolves short recipe links
type ShortLinkHandler struct {
	recipeService service.IRecipeService
	links         *shorturl.Codec
}

func NewShortLinkHandler(recipeService service.IRecipeService, links *shorturl.Codec) *ShortLinkHandler {
	return &ShortLinkHandler{recipeService: recipeService, links: links}
}

// RegisterRoutes mounts /s/:code at the root, outside the /api prefix
func (h *ShortLinkHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/s/:code", h.Resolve)
}

func (h *ShortLinkHandler) Resolve(c *gin.Context) {
	id, err := h.links.Decode(c.Param("code"))
	if err != nil {
		_ = c.Error(errNotFound)
		return
	}
	if err := h.recipeService.RecipeExists(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/api/recipes/%d/", id))
}
