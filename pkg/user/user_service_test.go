package user

import (
	"context"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/subscription"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Follow{}))
	return db
}

func newService(db *gorm.DB) UserService {
	return NewUserService(NewUserRepository(db), subscription.NewSubscriptionRepository(db), jwt.NewJWTService())
}

func register(t *testing.T, svc UserService, username string) domain.UserSummary {
	t.Helper()
	account, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	return account
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)

	account := register(t, svc, "chef")
	assert.Equal(t, "chef", account.Username)
	assert.False(t, account.IsSubscribed)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "chef@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, account.ID, resp.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	register(t, svc, "chef")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     "chef@example.com",
		Username:  "otherchef",
		FirstName: "Test",
		LastName:  "User",
		Password:  "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	register(t, svc, "chef")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     "second@example.com",
		Username:  "chef",
		FirstName: "Test",
		LastName:  "User",
		Password:  "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	register(t, svc, "chef")

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "chef@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	account := register(t, svc, "chef")

	got, err := svc.Me(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, got)

	_, err = svc.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetProfileIsSubscribed(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)
	viewer := register(t, svc, "viewer")
	author := register(t, svc, "chef")

	require.NoError(t, db.Create(&entities.Follow{
		ID:       uuid.New(),
		UserID:   uuid.MustParse(viewer.ID),
		AuthorID: uuid.MustParse(author.ID),
	}).Error)

	profile, err := svc.GetProfile(context.Background(), author.ID, viewer.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	anonymous, err := svc.GetProfile(context.Background(), author.ID, "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsSubscribed)

	own, err := svc.GetProfile(context.Background(), viewer.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, own.IsSubscribed)
}

func TestResetPasswordRoundTrip(t *testing.T) {
	db := newTestDB(t)
	jwtService := jwt.NewJWTService()
	svc := NewUserService(NewUserRepository(db), subscription.NewSubscriptionRepository(db), jwtService)
	account := register(t, svc, "chef")

	token, err := jwtService.GenerateTokenForgetPassword(map[string]any{"user_id": account.ID}, time.Minute*30)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    token,
		Password: "newsecret123",
	}))

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "chef@example.com",
		Password: "newsecret123",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "chef@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestResetPasswordBadToken(t *testing.T) {
	db := newTestDB(t)
	svc := newService(db)

	err := svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    "not-a-token",
		Password: "newsecret123",
	})
	assert.Error(t, err)
}
