package service

import "gorm.io/gorm"

// RecipeFilter holds the optional listing criteria. Filtered records that
// the request named at least one criterion, even one whose value turns
// out to be a no-op (is_favorited=0).
type RecipeFilter struct {
	Filtered      bool
	FavoritedOnly bool
	InCartOnly    bool
	AuthorID      *uint
	TagSlugs      []string
}

func matchAll(db *gorm.DB) *gorm.DB { return db }

// Scope builds the predicate over recipes for viewerID. empty is true when
// the listing must return no rows without querying: favorites or cart were
// requested by an anonymous viewer.
func (f RecipeFilter) Scope(viewerID *uint) (scope func(*gorm.DB) *gorm.DB, empty bool) {
	if !f.Filtered {
		return matchAll, false
	}
	if (f.FavoritedOnly || f.InCartOnly) && viewerID == nil {
		return nil, true
	}

	return func(db *gorm.DB) *gorm.DB {
		if f.FavoritedOnly {
			db = db.Where("EXISTS (SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)", *viewerID)
		}
		if f.InCartOnly {
			db = db.Where("EXISTS (SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?)", *viewerID)
		}
		if f.AuthorID != nil {
			db = db.Where("recipes.author_id = ?", *f.AuthorID)
		}
		if len(f.TagSlugs) > 0 {
			db = db.Where(`EXISTS (SELECT 1 FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id
				WHERE recipe_tags.recipe_id = recipes.id AND tags.slug IN ?)`, f.TagSlugs)
		}
		return db
	}, false
}
