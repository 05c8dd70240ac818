package service

import "github.com/lenarsag/foodgram/backend/internal/models"

// CanModifyRecipe reports whether userID may update or delete recipe.
// Only the author may.
func CanModifyRecipe(userID uint, recipe *models.Recipe) bool {
	return recipe.AuthorID == userID
}

func authorizeRecipe(userID uint, recipe *models.Recipe) error {
	if !CanModifyRecipe(userID, recipe) {
		return forbidden("You can only modify your own recipes")
	}
	return nil
}
