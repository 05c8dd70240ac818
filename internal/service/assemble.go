package service

import (
	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

// The functions below are pure: identical entities and viewer always give
// identical responses.

func toUserResponse(u *models.User, v Viewer) types.UserResponse {
	return types.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: v.Follows(u.ID),
		Avatar:       u.Avatar,
	}
}

func toTagResponse(t models.Tag) types.TagResponse {
	return types.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

func toIngredientResponse(i models.Ingredient) types.IngredientResponse {
	return types.IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func toRecipeIngredientResponse(ri models.RecipeIngredient) types.RecipeIngredientResponse {
	out := types.RecipeIngredientResponse{ID: ri.IngredientID, Amount: ri.Amount}
	if ri.Ingredient != nil {
		out.Name = ri.Ingredient.Name
		out.MeasurementUnit = ri.Ingredient.MeasurementUnit
	}
	return out
}

func toRecipeResponse(r *models.Recipe, v Viewer) types.RecipeResponse {
	out := types.RecipeResponse{
		ID:               r.ID,
		Tags:             make([]types.TagResponse, 0, len(r.Tags)),
		Ingredients:      make([]types.RecipeIngredientResponse, 0, len(r.IngredientAmounts)),
		IsFavorited:      v.Favorited(r.ID),
		IsInShoppingCart: v.InCart(r.ID),
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if r.Author != nil {
		out.Author = toUserResponse(r.Author, v)
	}
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, toTagResponse(t))
	}
	for _, ri := range r.IngredientAmounts {
		out.Ingredients = append(out.Ingredients, toRecipeIngredientResponse(ri))
	}
	return out
}

func toRecipeShortResponse(r *models.Recipe) types.RecipeShortResponse {
	return types.RecipeShortResponse{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

func toSubscriptionResponse(u *models.User, recipes []models.Recipe, count int64, v Viewer) types.SubscriptionResponse {
	out := types.SubscriptionResponse{
		UserResponse: toUserResponse(u, v),
		Recipes:      make([]types.RecipeShortResponse, 0, len(recipes)),
		RecipesCount: count,
	}
	for i := range recipes {
		out.Recipes = append(out.Recipes, toRecipeShortResponse(&recipes[i]))
	}
	return out
}
