package user

import (
	"context"
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/subscription"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserSummary, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserSummary, error)
		GetProfile(ctx context.Context, userID string, viewerID string) (domain.UserSummary, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository         UserRepository
		subscriptionRepository subscription.SubscriptionRepository
		jwtService             jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, subscriptionRepository subscription.SubscriptionRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:         userRepository,
		subscriptionRepository: subscriptionRepository,
		jwtService:             jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserSummary, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserSummary{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserSummary{}, err
	}
	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserSummary{}, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserSummary{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserSummary{}, err
	}

	newUser := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return domain.UserSummary{}, err
	}

	return summary(newUser, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	account, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	role := domain.RoleUser
	if account.IsStaff {
		role = domain.RoleStaff
	}

	return domain.LoginResponse{
		Token: s.jwtService.GenerateTokenUser(account.ID.String(), role),
		User:  summary(account, false),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserSummary, error) {
	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserSummary{}, domain.ErrUserNotFound
		}
		return domain.UserSummary{}, err
	}
	return summary(account, false), nil
}

func (s *userService) GetProfile(ctx context.Context, userID string, viewerID string) (domain.UserSummary, error) {
	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserSummary{}, domain.ErrUserNotFound
		}
		return domain.UserSummary{}, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != userID {
		isSubscribed, err = s.subscriptionRepository.FollowExists(ctx, viewerID, userID)
		if err != nil {
			return domain.UserSummary{}, err
		}
	}
	return summary(account, isSubscribed), nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	account, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(
		map[string]any{"user_id": account.ID.String()},
		time.Minute*30,
	)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Follow the link to reset your password:</p><p><a href=%q>%s</a></p>",
		account.FirstName, resetLink, resetLink,
	)
	return mailing.SendMail(account.Email, "Password reset", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, string(hash))
}

func summary(account *entities.User, isSubscribed bool) domain.UserSummary {
	return domain.UserSummary{
		ID:           account.ID.String(),
		Email:        account.Email,
		Username:     account.Username,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		IsSubscribed: isSubscribed,
	}
}
