package types

// LoginRequest represents the request body for obtaining a token
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents the request body for registering a user
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,max=128,password"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=128,password"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// RecipeIngredientRequest is one {id, amount} pair of a recipe body
type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required,min=1"`
	Amount int  `json:"amount" binding:"required,min=1,max=32000"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1,unique=ID,dive"`
	Tags        []uint                    `json:"tags" binding:"required,min=1,unique,dive,min=1"`
	Image       string                    `json:"image" binding:"required"`
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=32000"`
}

// UpdateRecipeRequest is CreateRecipeRequest with an optional image
type UpdateRecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1,unique=ID,dive"`
	Tags        []uint                    `json:"tags" binding:"required,min=1,unique,dive,min=1"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=32000"`
}
