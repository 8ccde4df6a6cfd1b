package subscription

import (
	"context"
	"foodgram-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		FollowExists(ctx context.Context, userID, authorID string) (bool, error)
		CreateFollow(ctx context.Context, userID, authorID uuid.UUID) error
		DeleteFollow(ctx context.Context, userID, authorID string) error
		GetFollowedAuthors(ctx context.Context, userID string) ([]entities.User, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *subscriptionRepository) FollowExists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) CreateFollow(ctx context.Context, userID, authorID uuid.UUID) error {
	follow := entities.Follow{
		ID:        uuid.New(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&follow).Error
}

func (r *subscriptionRepository) DeleteFollow(ctx context.Context, userID, authorID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Follow{}).Error
}

func (r *subscriptionRepository) GetFollowedAuthors(ctx context.Context, userID string) ([]entities.User, error) {
	var authors []entities.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at desc").
		Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}
