package service

import (
	"context"
	"fmt"
	"strings"
)

// ShoppingItem is one ingredient of the cart with amounts summed across recipes.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// ShoppingList aggregates the ingredients of every recipe in the user's
// cart, ordered by name.
func (s *RecipeService) ShoppingList(ctx context.Context, userID uint) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderShoppingList formats items as the downloadable text file.
func RenderShoppingList(items []ShoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list\n\n")
	if len(items) == 0 {
		b.WriteString("Your shopping cart is empty.\n")
		return b.String()
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s (%s): %d\n", i+1, item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}
