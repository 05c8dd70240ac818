package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/lenarsag/foodgram/backend/internal/logging"
	"github.com/lenarsag/foodgram/backend/internal/models"
	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/storage"
	"github.com/lenarsag/foodgram/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService handles recipe listing and mutations
type RecipeService struct {
	db     *gorm.DB
	images storage.ImageStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images storage.ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// ListRecipes returns one page of recipes matching filter, personalised for viewerID.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID *uint, filter RecipeFilter, params pagination.Params, baseURL string) (pagination.Page[types.RecipeResponse], error) {
	scope, empty := filter.Scope(viewerID)
	if empty {
		return pagination.Empty[types.RecipeResponse](params, baseURL), nil
	}

	var (
		total   int64
		recipes []models.Recipe
		viewer  Viewer
	)
	err := readTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Scopes(scope).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		if err := tx.Model(&models.Recipe{}).
			Scopes(scope, withRecipeRelations).
			Order("recipes.id").
			Offset(params.Offset()).
			Limit(params.Size).
			Find(&recipes).Error; err != nil {
			return err
		}
		var err error
		viewer, err = recipeViewer(tx, viewerID, recipes)
		return err
	})
	if err != nil {
		return pagination.Page[types.RecipeResponse]{}, err
	}

	results := make([]types.RecipeResponse, len(recipes))
	for i := range recipes {
		results[i] = toRecipeResponse(&recipes[i], viewer)
	}
	return pagination.NewPage(results, total, params, baseURL), nil
}

// GetRecipe returns a single hydrated recipe
func (s *RecipeService) GetRecipe(ctx context.Context, viewerID *uint, id uint) (*types.RecipeResponse, error) {
	var (
		recipe models.Recipe
		viewer Viewer
	)
	err := readTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Scopes(withRecipeRelations).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Recipe %d not found", id)
			}
			return err
		}
		var err error
		viewer, err = recipeViewer(tx, viewerID, []models.Recipe{recipe})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toRecipeResponse(&recipe, viewer)
	return &resp, nil
}

// RecipeExists returns ErrNotFound unless a recipe with id exists
func (s *RecipeService) RecipeExists(ctx context.Context, id uint) error {
	_, err := findRecipe(s.db.WithContext(ctx), id)
	return err
}

// CreateRecipe validates in, checks its references and stores it with its
// image in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uint, in RecipeInput) (*types.RecipeResponse, error) {
	img, err := in.validate(true)
	if err != nil {
		return nil, err
	}

	var (
		id    uint
		saved string
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, in); err != nil {
			return err
		}
		if err := checkNameFree(tx, authorID, in.Name, 0); err != nil {
			return err
		}

		ref, err := s.images.Save(ctx, img, storage.RecipeFolder)
		if err != nil {
			return err
		}
		saved = ref

		recipe := models.Recipe{
			AuthorID:    authorID,
			Name:        strings.TrimSpace(in.Name),
			Image:       ref,
			Text:        in.Text,
			CookingTime: in.CookingTime,
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return nameTaken(err, in.Name)
		}
		id = recipe.ID
		return insertAssociations(tx, recipe.ID, in)
	})
	if err != nil {
		s.discardImage(ctx, saved)
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", id).Uint("author_id", authorID).Msg("recipe created")
	return s.GetRecipe(ctx, &authorID, id)
}

// UpdateRecipe replaces the fields and the full tag and ingredient sets of
// a recipe owned by userID.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, recipeID uint, in RecipeInput) (*types.RecipeResponse, error) {
	img, err := in.validate(false)
	if err != nil {
		return nil, err
	}

	var staleImage, saved string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if err := authorizeRecipe(userID, recipe); err != nil {
			return err
		}
		if err := checkReferences(tx, in); err != nil {
			return err
		}
		if err := checkNameFree(tx, recipe.AuthorID, in.Name, recipe.ID); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         strings.TrimSpace(in.Name),
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}
		if img != nil {
			ref, err := s.images.Save(ctx, img, storage.RecipeFolder)
			if err != nil {
				return err
			}
			if ref != recipe.Image {
				updates["image"] = ref
				staleImage = recipe.Image
				saved = ref
			}
		}
		if err := tx.Model(recipe).Updates(updates).Error; err != nil {
			return nameTaken(err, in.Name)
		}

		if err := clearAssociations(tx, recipe.ID); err != nil {
			return err
		}
		if err := insertAssociations(tx, recipe.ID, in); err != nil {
			return err
		}
		if staleImage != "" {
			staleImage, err = unreferencedImage(tx, staleImage)
		}
		return err
	})
	if err != nil {
		s.discardImage(ctx, saved)
		return nil, err
	}

	s.deleteImage(ctx, staleImage)
	return s.GetRecipe(ctx, &userID, recipeID)
}

// DeleteRecipe removes a recipe owned by userID together with its
// associations and any favorite or cart entries pointing at it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	var staleImage string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, recipeID)
		if err != nil {
			return err
		}
		if err := authorizeRecipe(userID, recipe); err != nil {
			return err
		}

		if err := clearAssociations(tx, recipe.ID); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Recipe{}, recipe.ID).Error; err != nil {
			return err
		}
		staleImage, err = unreferencedImage(tx, recipe.Image)
		return err
	})
	if err != nil {
		return err
	}

	s.deleteImage(ctx, staleImage)
	logging.Ctx(ctx).Info().Uint("recipe_id", recipeID).Msg("recipe deleted")
	return nil
}

// deleteImage removes an image file after its last recipe is gone. Failure
// leaves an orphaned file and is only logged.
func (s *RecipeService) deleteImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("image", ref).Msg("failed to delete recipe image")
	}
}

// discardImage removes a file saved by a transaction that rolled back,
// unless a committed recipe already uses the same content.
func (s *RecipeService) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	stale, err := unreferencedImage(s.db.WithContext(ctx), ref)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("image", ref).Msg("failed to check image references")
		return
	}
	s.deleteImage(ctx, stale)
}

func findRecipe(tx *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := tx.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Recipe %d not found", id)
		}
		return nil, err
	}
	return &recipe, nil
}

// checkReferences collects every missing tag and ingredient id at once.
func checkReferences(tx *gorm.DB, in RecipeInput) error {
	var tags []uint
	if err := tx.Model(&models.Tag{}).Where("id IN ?", in.TagIDs).Pluck("id", &tags).Error; err != nil {
		return err
	}
	var ingredients []uint
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", in.ingredientIDs()).Pluck("id", &ingredients).Error; err != nil {
		return err
	}

	missing := &MissingReferencesError{
		Tags:        difference(in.TagIDs, tags),
		Ingredients: difference(in.ingredientIDs(), ingredients),
	}
	if len(missing.Tags) > 0 || len(missing.Ingredients) > 0 {
		return missing
	}
	return nil
}

// difference returns the ids in want that are not in have, sorted.
func difference(want, have []uint) []uint {
	found := newIDSet(have)
	var out []uint
	for _, id := range want {
		if !found.has(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// checkNameFree rejects a name already used by another recipe of the same
// author. exceptID is the recipe being updated, 0 on create.
func checkNameFree(tx *gorm.DB, authorID uint, name string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.Recipe{}).Where("author_id = ? AND name = ?", authorID, strings.TrimSpace(name))
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nameConflict(name)
	}
	return nil
}

// nameTaken maps a unique violation on (author_id, name) that slipped past
// checkNameFree under concurrent writes.
func nameTaken(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nameConflict(name)
	}
	return err
}

func nameConflict(name string) error {
	return conflict("You already have a recipe named %q", strings.TrimSpace(name))
}

func clearAssociations(tx *gorm.DB, recipeID uint) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
		return err
	}
	return tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error
}

func insertAssociations(tx *gorm.DB, recipeID uint, in RecipeInput) error {
	tags := make([]models.RecipeTag, len(in.TagIDs))
	for i, id := range in.TagIDs {
		tags[i] = models.RecipeTag{RecipeID: recipeID, TagID: id}
	}
	if err := tx.Create(&tags).Error; err != nil {
		return err
	}

	amounts := make([]models.RecipeIngredient, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		amounts[i] = models.RecipeIngredient{RecipeID: recipeID, IngredientID: ing.ID, Amount: ing.Amount}
	}
	return tx.Omit(clause.Associations).Create(&amounts).Error
}

// unreferencedImage returns ref when no recipe uses it any more. Images are
// content addressed, so two recipes can share one file.
func unreferencedImage(tx *gorm.DB, ref string) (string, error) {
	var count int64
	if err := tx.Model(&models.Recipe{}).Where("image = ?", ref).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", nil
	}
	return ref, nil
}
