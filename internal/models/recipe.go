package models

import "time"

// Inclusive bounds shared by the schema checks and request validation.
const (
	MinCookingTime = 1
	MaxCookingTime = 32000
	MinAmount      = 1
	MaxAmount      = 32000
)

type Recipe struct {
	ID          uint      `gorm:"primaryKey"`
	AuthorID    uint      `gorm:"not null;uniqueIndex:uix_recipes_author_name"`
	Name        string    `gorm:"size:200;not null;uniqueIndex:uix_recipes_author_name"`
	Image       string    `gorm:"size:255;not null"`
	Text        string    `gorm:"type:text;not null"`
	CookingTime int       `gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1 AND cooking_time <= 32000"`
	CreatedAt   time.Time `gorm:"index"`

	Author            *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags              []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	IngredientAmounts []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient carries the amount of one ingredient in one recipe.
// Ingredient identity always comes from this row, never from list position.
type RecipeIngredient struct {
	RecipeID     uint        `gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint        `gorm:"primaryKey;autoIncrement:false;index"`
	Amount       int         `gorm:"not null;check:chk_recipe_ingredients_amount,amount >= 1 AND amount <= 32000"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

// RecipeTag is the join row behind Recipe.Tags.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID    uint `gorm:"primaryKey;autoIncrement:false;index"`
}

type Favorite struct {
	UserID    uint    `gorm:"primaryKey;autoIncrement:false"`
	RecipeID  uint    `gorm:"primaryKey;autoIncrement:false;index"`
	User      *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type CartItem struct {
	UserID    uint    `gorm:"primaryKey;autoIncrement:false"`
	RecipeID  uint    `gorm:"primaryKey;autoIncrement:false;index"`
	User      *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (CartItem) TableName() string {
	return "shopping_carts"
}

// All lists every entity in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeTag{},
		&RecipeIngredient{},
		&Subscription{},
		&Favorite{},
		&CartItem{},
	}
}
