package shoppinglist

import (
	"context"
	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		AggregateCart(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// AggregateCart sums the ingredient lines of every recipe in the user's cart.
// Grouping is by ingredient name and measurement unit, matching the exported
// list format; catalog rows with identical display text fold together. The
// ordering makes the result deterministic for a fixed cart.
func (r *shoppingListRepository) AggregateCart(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
