// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
	"time"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	ImageURL    string    `json:"image_url,omitempty"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`

	Author            *User              `gorm:"foreignKey:AuthorID"`
	Tags              []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients"`
	CreatedAt         time.Time          `gorm:"type:timestamp" json:"created_at"`
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Amount       int       `gorm:"not null" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_recipe;not null" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_recipe;not null" json:"recipe_id"`

	User      *User     `gorm:"foreignKey:UserID"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}

type ShoppingCart struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_recipe;not null" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_recipe;not null" json:"recipe_id"`

	User      *User     `gorm:"foreignKey:UserID"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
