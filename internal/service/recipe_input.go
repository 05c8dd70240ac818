package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/storage"
)

const maxRecipeNameLen = 200

// IngredientAmount is one {id, amount} pair of a recipe body.
type IngredientAmount struct {
	ID     uint
	Amount int
}

// RecipeInput is the writable part of a recipe. Image is a base64 payload;
// it may be empty on update to keep the current image.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// validate checks everything that can be checked without the store and
// returns the decoded image, if any.
func (in RecipeInput) validate(requireImage bool) (*storage.Image, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if utf8.RuneCountInString(name) > maxRecipeNameLen {
		return nil, invalid("name must be at most %d characters", maxRecipeNameLen)
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, invalid("text is required")
	}
	if in.CookingTime < models.MinCookingTime || in.CookingTime > models.MaxCookingTime {
		return nil, invalid("cooking_time must be between %d and %d", models.MinCookingTime, models.MaxCookingTime)
	}

	if len(in.TagIDs) == 0 {
		return nil, invalid("tags must not be empty")
	}
	seenTags := make(idSet, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if id == 0 {
			return nil, invalid("tag ids must be positive")
		}
		if seenTags.has(id) {
			return nil, invalid("tag %d is listed more than once", id)
		}
		seenTags[id] = struct{}{}
	}

	if len(in.Ingredients) == 0 {
		return nil, invalid("ingredients must not be empty")
	}
	seenIngredients := make(idSet, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if ing.ID == 0 {
			return nil, invalid("ingredient ids must be positive")
		}
		if seenIngredients.has(ing.ID) {
			return nil, invalid("ingredient %d is listed more than once", ing.ID)
		}
		seenIngredients[ing.ID] = struct{}{}
		if ing.Amount < models.MinAmount || ing.Amount > models.MaxAmount {
			return nil, invalid("amount must be between %d and %d", models.MinAmount, models.MaxAmount)
		}
	}

	if in.Image == "" {
		if requireImage {
			return nil, invalid("image is required")
		}
		return nil, nil
	}
	img, err := storage.DecodeImage(in.Image)
	if errors.Is(err, storage.ErrInvalidImage) {
		return nil, invalid("image must be a base64 encoded image")
	}
	return img, err
}

func (in RecipeInput) ingredientIDs() []uint {
	ids := make([]uint, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}
