package service

import (
	"github.com/lenarsag/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// withRecipeRelations batch-loads author, tags and ingredient amounts for
// every recipe the query returns. Each amount row carries its own
// Ingredient, so amounts never depend on list position.
func withRecipeRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("IngredientAmounts", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.ingredient_id") }).
		Preload("IngredientAmounts.Ingredient")
}

func recipeIDs(recipes []models.Recipe) []uint {
	ids := make([]uint, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	return ids
}

func authorIDs(recipes []models.Recipe) []uint {
	seen := make(idSet, len(recipes))
	var ids []uint
	for i := range recipes {
		if !seen.has(recipes[i].AuthorID) {
			seen[recipes[i].AuthorID] = struct{}{}
			ids = append(ids, recipes[i].AuthorID)
		}
	}
	return ids
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	return ids
}

// recipeViewer loads the viewer's favorite, cart and following membership
// restricted to one page of recipes. Anonymous viewers issue no queries.
func recipeViewer(tx *gorm.DB, viewerID *uint, recipes []models.Recipe) (Viewer, error) {
	v := Viewer{ID: viewerID}
	if viewerID == nil || len(recipes) == 0 {
		return v, nil
	}
	ids := recipeIDs(recipes)

	var favorites []uint
	if err := tx.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
		Pluck("recipe_id", &favorites).Error; err != nil {
		return v, err
	}
	var cart []uint
	if err := tx.Model(&models.CartItem{}).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, ids).
		Pluck("recipe_id", &cart).Error; err != nil {
		return v, err
	}
	following, err := followingAmong(tx, viewerID, authorIDs(recipes))
	if err != nil {
		return v, err
	}

	v.Favorites = newIDSet(favorites)
	v.Cart = newIDSet(cart)
	v.Following = following
	return v, nil
}

// followingAmong returns which of userIDs the viewer follows.
func followingAmong(tx *gorm.DB, viewerID *uint, userIDs []uint) (idSet, error) {
	if viewerID == nil || len(userIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := tx.Model(&models.Subscription{}).
		Where("follower_id = ? AND following_id IN ?", *viewerID, userIDs).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	return newIDSet(ids), nil
}

// recipePreviews returns each author's recipes in id order, at most limit
// per author when limit is set.
func recipePreviews(tx *gorm.DB, authors []uint, limit *int) (map[uint][]models.Recipe, error) {
	out := make(map[uint][]models.Recipe, len(authors))
	if len(authors) == 0 || (limit != nil && *limit == 0) {
		return out, nil
	}

	var recipes []models.Recipe
	var err error
	if limit == nil {
		err = tx.Where("author_id IN ?", authors).Order("author_id, id").Find(&recipes).Error
	} else {
		ranked := tx.Model(&models.Recipe{}).
			Select("recipes.*, ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY id) AS rn").
			Where("author_id IN ?", authors)
		err = tx.Table("(?) AS ranked", ranked).
			Where("rn <= ?", *limit).
			Order("author_id, id").
			Find(&recipes).Error
	}
	if err != nil {
		return nil, err
	}

	for _, r := range recipes {
		out[r.AuthorID] = append(out[r.AuthorID], r)
	}
	return out, nil
}

// recipeCounts returns the number of recipes of each author in one grouped query.
func recipeCounts(tx *gorm.DB, authors []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(authors))
	if len(authors) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID uint
		Total    int64
	}
	if err := tx.Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authors).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AuthorID] = r.Total
	}
	return out, nil
}
