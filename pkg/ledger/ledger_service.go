package ledger

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/pkg/recipe"

	"gorm.io/gorm"
)

type (
	// LedgerService drives the two uniqueness-constrained user×recipe
	// relations. Adding an existing pair is a conflict; removing an absent
	// pair is reported as missing, also when a concurrent remove won the
	// race. The database unique index backstops concurrent adds.
	LedgerService interface {
		AddFavorite(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error)
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		AddToCart(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error)
		RemoveFromCart(ctx context.Context, userID, recipeID string) error
	}

	ledgerService struct {
		ledgerRepository LedgerRepository
	}
)

func NewLedgerService(ledgerRepository LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepository: ledgerRepository}
}

func (s *ledgerService) AddFavorite(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error) {
	rec, err := s.ledgerRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeSummary{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeSummary{}, err
	}

	exists, err := s.ledgerRepository.FavoriteExists(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if exists {
		return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
	}

	userUUID, err := parseUUID(userID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if err := s.ledgerRepository.CreateFavorite(ctx, userUUID, rec.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeSummary{}, err
	}

	return recipe.Summary(rec), nil
}

func (s *ledgerService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	exists, err := s.ledgerRepository.FavoriteExists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrFavoriteNotFound
	}
	return s.ledgerRepository.DeleteFavorite(ctx, userID, recipeID)
}

func (s *ledgerService) AddToCart(ctx context.Context, userID, recipeID string) (domain.RecipeSummary, error) {
	rec, err := s.ledgerRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeSummary{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeSummary{}, err
	}

	exists, err := s.ledgerRepository.CartEntryExists(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if exists {
		return domain.RecipeSummary{}, domain.ErrAlreadyInCart
	}

	userUUID, err := parseUUID(userID)
	if err != nil {
		return domain.RecipeSummary{}, err
	}
	if err := s.ledgerRepository.CreateCartEntry(ctx, userUUID, rec.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeSummary{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeSummary{}, err
	}

	return recipe.Summary(rec), nil
}

func (s *ledgerService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	exists, err := s.ledgerRepository.CartEntryExists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrCartEntryNotFound
	}
	return s.ledgerRepository.DeleteCartEntry(ctx, userID, recipeID)
}
