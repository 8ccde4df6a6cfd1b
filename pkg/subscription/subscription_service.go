package subscription

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, userID, authorID string) (domain.SubscriptionEntry, error)
		Unsubscribe(ctx context.Context, userID, authorID string) error
		GetSubscriptions(ctx context.Context, userID string, recipesLimit int) ([]domain.SubscriptionEntry, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		recipeRepository       recipe.RecipeRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository, recipeRepository recipe.RecipeRepository) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		recipeRepository:       recipeRepository,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID string) (domain.SubscriptionEntry, error) {
	if userID == authorID {
		return domain.SubscriptionEntry{}, domain.ErrSelfSubscription
	}

	author, err := s.subscriptionRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionEntry{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionEntry{}, err
	}

	exists, err := s.subscriptionRepository.FollowExists(ctx, userID, authorID)
	if err != nil {
		return domain.SubscriptionEntry{}, err
	}
	if exists {
		return domain.SubscriptionEntry{}, domain.ErrAlreadySubscribed
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionEntry{}, domain.ErrParseUUID
	}
	if err := s.subscriptionRepository.CreateFollow(ctx, userUUID, author.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionEntry{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionEntry{}, err
	}

	return s.buildEntry(ctx, author, 0)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	exists, err := s.subscriptionRepository.FollowExists(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrSubscriptionNotFound
	}
	return s.subscriptionRepository.DeleteFollow(ctx, userID, authorID)
}

// GetSubscriptions lists every followed author with the author's newest
// recipes. recipesLimit trims the recipe list only; the count stays total.
func (s *subscriptionService) GetSubscriptions(ctx context.Context, userID string, recipesLimit int) ([]domain.SubscriptionEntry, error) {
	authors, err := s.subscriptionRepository.GetFollowedAuthors(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.SubscriptionEntry, 0, len(authors))
	for i := range authors {
		entry, err := s.buildEntry(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *subscriptionService) buildEntry(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionEntry, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionEntry{}, err
	}
	count, err := s.recipeRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.SubscriptionEntry{}, err
	}

	summaries := make([]domain.RecipeSummary, 0, len(recipes))
	for _, rec := range recipes {
		summaries = append(summaries, recipe.Summary(rec))
	}

	return domain.SubscriptionEntry{
		UserSummary: domain.UserSummary{
			ID:           author.ID.String(),
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
		},
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}
