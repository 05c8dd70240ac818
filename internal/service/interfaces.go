package service

import (
	"context"

	"github.com/lenarsag/foodgram/backend/internal/pagination"
	"github.com/lenarsag/foodgram/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IUserService defines the interface for account, profile and subscription operations
type IUserService interface {
	Signup(ctx context.Context, in SignupInput) (*types.UserResponse, error)
	ListUsers(ctx context.Context, viewerID *uint, params pagination.Params, baseURL string) (pagination.Page[types.UserResponse], error)
	GetUser(ctx context.Context, viewerID *uint, id uint) (*types.UserResponse, error)
	SetPassword(ctx context.Context, userID uint, current, next string) error
	SetAvatar(ctx context.Context, userID uint, payload string) (string, error)
	DeleteAvatar(ctx context.Context, userID uint) error
	ListSubscriptions(ctx context.Context, followerID uint, params pagination.Params, recipeLimit *int, baseURL string) (pagination.Page[types.SubscriptionResponse], error)
	Subscribe(ctx context.Context, followerID, followingID uint, recipeLimit *int) (*types.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, followerID, followingID uint) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, viewerID *uint, filter RecipeFilter, params pagination.Params, baseURL string) (pagination.Page[types.RecipeResponse], error)
	GetRecipe(ctx context.Context, viewerID *uint, id uint) (*types.RecipeResponse, error)
	RecipeExists(ctx context.Context, id uint) error
	CreateRecipe(ctx context.Context, authorID uint, in RecipeInput) (*types.RecipeResponse, error)
	UpdateRecipe(ctx context.Context, userID, recipeID uint, in RecipeInput) (*types.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uint) error
	AddFavorite(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uint) error
	AddToCart(ctx context.Context, userID, recipeID uint) (*types.RecipeShortResponse, error)
	RemoveFromCart(ctx context.Context, userID, recipeID uint) error
	ShoppingList(ctx context.Context, userID uint) ([]ShoppingItem, error)
}

// ITagService defines the interface for tag lookups
type ITagService interface {
	ListTags(ctx context.Context) ([]types.TagResponse, error)
	GetTag(ctx context.Context, id uint) (*types.TagResponse, error)
}

// IIngredientService defines the interface for ingredient lookups
type IIngredientService interface {
	ListIngredients(ctx context.Context, prefix string) ([]types.IngredientResponse, error)
	GetIngredient(ctx context.Context, id uint) (*types.IngredientResponse, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IUserService       = (*UserService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ ITagService        = (*TagService)(nil)
	_ IIngredientService = (*IngredientService)(nil)
)
