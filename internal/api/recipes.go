package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lenarsag/foodgram/backend/internal/middleware"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/shorturl"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

const shoppingListFilename = "shopping_list.txt"

// RecipeHandler serves recipes, favorites and the shopping cart
type RecipeHandler struct {
	recipeService service.IRecipeService
	pager         *pagination.Pager
	links         *shorturl.Codec
}

func NewRecipeHandler(recipeService service.IRecipeService, pager *pagination.Pager, links *shorturl.Codec) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, pager: pager, links: links}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, guards Guards) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", guards.Optional, h.ListRecipes)
		recipes.POST("", guards.Required, guards.recipeCreation(), h.CreateRecipe)
		recipes.GET("/download_shopping_cart", guards.Required, h.DownloadShoppingCart)
		recipes.GET("/:id", guards.Optional, h.GetRecipe)
		recipes.PATCH("/:id", guards.Required, h.UpdateRecipe)
		recipes.DELETE("/:id", guards.Required, h.DeleteRecipe)
		recipes.GET("/:id/get-link", h.GetLink)
		recipes.POST("/:id/favorite", guards.Required, h.AddFavorite)
		recipes.DELETE("/:id/favorite", guards.Required, h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", guards.Required, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", guards.Required, h.RemoveFromCart)
	}
}

// ListRecipes supports is_favorited, is_in_shopping_cart, author (or
// author_id) and repeated tags, plus page and size.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	params, ok := pageParams(c, h.pager)
	if !ok {
		return
	}
	filter, err := parseRecipeFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := h.recipeService.ListRecipes(c.Request.Context(), middleware.ViewerID(c), filter, params, pagination.BaseURL(c.Request))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func parseRecipeFilter(c *gin.Context) (service.RecipeFilter, error) {
	q := c.Request.URL.Query()
	var f service.RecipeFilter
	for _, key := range []string{"is_favorited", "is_in_shopping_cart", "author", "author_id", "tags"} {
		if q.Has(key) {
			f.Filtered = true
		}
	}

	var err error
	if f.FavoritedOnly, err = parseFlag(q.Get("is_favorited"), "is_favorited"); err != nil {
		return f, err
	}
	if f.InCartOnly, err = parseFlag(q.Get("is_in_shopping_cart"), "is_in_shopping_cart"); err != nil {
		return f, err
	}

	author := q.Get("author")
	if author == "" {
		author = q.Get("author_id")
	}
	if author != "" {
		id, err := strconv.ParseUint(author, 10, 0)
		if err != nil || id == 0 {
			return f, badRequest("author must be a positive integer")
		}
		authorID := uint(id)
		f.AuthorID = &authorID
	}

	for _, raw := range q["tags"] {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				f.TagSlugs = append(f.TagSlugs, slug)
			}
		}
	}
	return f, nil
}

func parseFlag(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, badRequest("%s must be 0 or 1", name)
	}
	return v, nil
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID,
		recipeInput(req.Name, req.Text, req.CookingTime, req.Image, req.Tags, req.Ingredients))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id,
		recipeInput(req.Name, req.Text, req.CookingTime, req.Image, req.Tags, req.Ingredients))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func recipeInput(name, text string, cookingTime int, image string, tags []uint, ingredients []types.RecipeIngredientRequest) service.RecipeInput {
	in := service.RecipeInput{
		Name:        name,
		Text:        text,
		CookingTime: cookingTime,
		Image:       image,
		TagIDs:      tags,
		Ingredients: make([]service.IngredientAmount, len(ingredients)),
	}
	for i, ing := range ingredients {
		in.Ingredients[i] = service.IngredientAmount{ID: ing.ID, Amount: ing.Amount}
	}
	return in
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addMember(c, h.recipeService.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeMember(c, h.recipeService.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addMember(c, h.recipeService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeMember(c, h.recipeService.RemoveFromCart)
}

type addFunc func(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error)

type removeFunc func(ctx context.Context, userID, recipeID uint) error

func (h *RecipeHandler) addMember(c *gin.Context, add addFunc) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	recipe, err := add(c.Request.Context(), userID, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) removeMember(c *gin.Context, remove removeFunc) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)
	if err := remove(c.Request.Context(), userID, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart returns the summed ingredients of every recipe in
// the cart as a text attachment
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	items, err := h.recipeService.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", shoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.RenderShoppingList(items)))
}

// GetLink returns the short link of a recipe
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.recipeService.RecipeExists(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	code, err := h.links.Encode(id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.ShortLinkResponse{
		ShortLink: pagination.Origin(c.Request) + "/s/" + code,
	})
}
