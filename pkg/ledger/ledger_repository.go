package ledger

import (
	"context"
	"foodgram-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	LedgerRepository interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error)
		CreateFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		DeleteFavorite(ctx context.Context, userID, recipeID string) error
		CartEntryExists(ctx context.Context, userID, recipeID string) (bool, error)
		CreateCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error
		DeleteCartEntry(ctx context.Context, userID, recipeID string) error
	}

	ledgerRepository struct {
		db *gorm.DB
	}
)

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *ledgerRepository) FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ledgerRepository) CreateFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	favorite := entities.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *ledgerRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{}).Error
}

func (r *ledgerRepository) CartEntryExists(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ledgerRepository) CreateCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error {
	entry := entities.ShoppingCart{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *ledgerRepository) DeleteCartEntry(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCart{}).Error
}
