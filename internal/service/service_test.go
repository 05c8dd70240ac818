package service

import (
	"encoding/base64"
	"testing"

	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/storage"
	"github.com/lenarsag/foodgram/backend/internal/testhelpers"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testBaseURL = "http://testserver/api/recipes"

var imagePayload = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not really a png"))

type testEnv struct {
	db      *gorm.DB
	recipes *RecipeService
	users   *UserService
	store   *storage.LocalStore
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	store := storage.NewLocalStore(t.TempDir(), "/media")
	users := NewUserService(db, store)
	users.bcryptCost = bcrypt.MinCost
	return &testEnv{
		db:      db,
		recipes: NewRecipeService(db, store),
		users:   users,
		store:   store,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func firstPage(size int) pagination.Params {
	return pagination.Params{Page: 1, Size: size}
}

func recipeInput(name string, tagIDs []uint, ingredients ...IngredientAmount) RecipeInput {
	return RecipeInput{
		Name:        name,
		Text:        "Mix and cook",
		CookingTime: 20,
		Image:       imagePayload,
		TagIDs:      tagIDs,
		Ingredients: ingredients,
	}
}

func responseIDs[T any](items []T, id func(T) uint) []uint {
	out := make([]uint, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}
