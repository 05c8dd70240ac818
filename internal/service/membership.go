package service

import (
	"context"
	"errors"

	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/types"
	"gorm.io/gorm"
)

// membership describes one user<->recipe set: favorites or the shopping cart.
type membership struct {
	row        func(userID, recipeID uint) interface{}
	model      interface{}
	addedMsg   string
	missingMsg string
}

var (
	favorites = membership{
		row:        func(u, r uint) interface{} { return &models.Favorite{UserID: u, RecipeID: r} },
		model:      &models.Favorite{},
		addedMsg:   "Recipe is already in favorites",
		missingMsg: "Recipe is not in favorites",
	}
	shoppingCart = membership{
		row:        func(u, r uint) interface{} { return &models.CartItem{UserID: u, RecipeID: r} },
		model:      &models.CartItem{},
		addedMsg:   "Recipe is already in the shopping cart",
		missingMsg: "Recipe is not in the shopping cart",
	}
)

func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error) {
	return s.addMember(ctx, favorites, userID, recipeID)
}

func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	return s.removeMember(ctx, favorites, userID, recipeID)
}

func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error) {
	return s.addMember(ctx, shoppingCart, userID, recipeID)
}

func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	return s.removeMember(ctx, shoppingCart, userID, recipeID)
}

// addMember inserts (userID, recipeID); a pair already present is a conflict.
func (s *RecipeService) addMember(ctx context.Context, m membership, userID, recipeID uint) (*types.RecipeShortResponse, error) {
	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if recipe, err = findRecipe(tx, recipeID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(m.model).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("%s", m.addedMsg)
		}

		err = tx.Create(m.row(userID, recipeID)).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("%s", m.addedMsg)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toRecipeShortResponse(recipe)
	return &resp, nil
}

// removeMember deletes (userID, recipeID); removing an absent pair is a
// validation error.
func (s *RecipeService) removeMember(ctx context.Context, m membership, userID, recipeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRecipe(tx, recipeID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(m.model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalid("%s", m.missingMsg)
		}
		return nil
	})
}
