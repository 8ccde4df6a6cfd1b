package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessRemoveFavorite   = "recipe removed from favorites"
	MessageSuccessAddToCart        = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart   = "recipe removed from shopping cart"
	MessageSuccessDownloadShopping = "success download shopping list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to update favorites"
	MessageFailedShoppingCart    = "failed to update shopping cart"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrInvalidCookingTime       = errors.New("cooking time must be at least 1 minute")
	ErrInvalidIngredientAmount  = errors.New("ingredient amount must be at least 1")
	ErrDuplicateIngredient      = errors.New("duplicate ingredient in recipe")
	ErrEmptyIngredients         = errors.New("recipe must contain at least one ingredient")
	ErrInvalidImagePayload      = errors.New("invalid image payload")

	ErrAlreadyFavorited  = errors.New("recipe already in favorites")
	ErrFavoriteNotFound  = errors.New("favorite entry does not exist")
	ErrAlreadyInCart     = errors.New("recipe already in shopping cart")
	ErrCartEntryNotFound = errors.New("shopping cart entry does not exist")
)

type (
	IngredientLineRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name        string                  `json:"name" validate:"required,max=200"`
		Text        string                  `json:"text" validate:"required,max=1000"`
		CookingTime int                     `json:"cooking_time" validate:"required"`
		Image       string                  `json:"image,omitempty"`
		Tags        []string                `json:"tags" validate:"dive,uuid"`
		Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,dive"`
	}

	UpdateRecipeRequest struct {
		Name        string                  `json:"name" validate:"required,max=200"`
		Text        string                  `json:"text" validate:"required,max=1000"`
		CookingTime int                     `json:"cooking_time" validate:"required"`
		Image       string                  `json:"image,omitempty"`
		Tags        []string                `json:"tags" validate:"dive,uuid"`
		Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,dive"`
	}

	RecipeIngredientLine struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeDetail struct {
		ID                string                 `json:"id"`
		Name              string                 `json:"name"`
		Author            UserSummary            `json:"author"`
		Tags              []TagResponse          `json:"tags"`
		Ingredients       []RecipeIngredientLine `json:"ingredients"`
		IsFavorited       bool                   `json:"is_favorited"`
		IsInShoppingCart  bool                   `json:"is_in_shopping_cart"`
		Image             string                 `json:"image,omitempty"`
		Text              string                 `json:"text"`
		CookingTime       int                    `json:"cooking_time"`
		CreatedAt         time.Time              `json:"created_at"`
	}

	// RecipeSummary is the short form returned by the favorite and cart
	// ledgers and inside subscription listings.
	RecipeSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListFilter struct {
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
		Page             int
		Limit            int
	}
)
