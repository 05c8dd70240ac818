package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/service"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

func (m *MockRecipeService) ListRecipes(ctx context.Context, viewerID *uint, filter service.RecipeFilter, params pagination.Params, baseURL string) (pagination.Page[types.RecipeResponse], error) {
	args := m.Called(ctx, viewerID, filter, params, baseURL)
	return args.Get(0).(pagination.Page[types.RecipeResponse]), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, viewerID *uint, id uint) (*types.RecipeResponse, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) RecipeExists(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, authorID uint, in service.RecipeInput) (*types.RecipeResponse, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, userID, recipeID uint, in service.RecipeInput) (*types.RecipeResponse, error) {
	args := m.Called(ctx, userID, recipeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeService) AddFavorite(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeShortResponse), args.Error(1)
}

func (m *MockRecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeService) AddToCart(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeShortResponse), args.Error(1)
}

func (m *MockRecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeService) ShoppingList(ctx context.Context, userID uint) ([]service.ShoppingItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ShoppingItem), args.Error(1)
}
