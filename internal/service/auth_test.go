package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wh33les/HusbandsGames/internal/domain"
	"github.com/wh33les/HusbandsGames/internal/repository"
	"github.com/wh33les/HusbandsGames/internal/repository/mocks"
)

const testSecret = "test-secret-key"

func adminUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:       1,
		Username: "wh33les",
		Password: hash,
		Name:     "Ashley",
	}
}

func TestNewAuthServiceValidation(t *testing.T) {
	repo := new(mocks.UserRepository)

	_, err := NewAuthService(repo, "", 24)
	assert.Error(t, err)

	svc, err := NewAuthService(repo, testSecret, 0)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	assert.Panics(t, func() { _, _ = NewAuthService(nil, testSecret, 24) })
}

func TestLoginSuccess(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "wh33les").Return(adminUser(t, "hunter2"), nil)

	svc, err := NewAuthService(repo, testSecret, 24)
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "wh33les", "hunter2")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "wh33les", user.Username)
	assert.Equal(t, "Ashley", user.Name)
	assert.Empty(t, user.Password)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "wh33les", claims["sub"])
	assert.NotNil(t, claims["exp"])
	repo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "wh33les").Return(adminUser(t, "hunter2"), nil)

	svc, err := NewAuthService(repo, testSecret, 24)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "wh33les", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, repository.ErrUserNotFound)

	svc, err := NewAuthService(repo, testSecret, 24)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRepoFailureCollapsesToInvalidCredentials(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "wh33les").Return(nil, errors.New("connection refused"))

	svc, err := NewAuthService(repo, testSecret, 24)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "wh33les", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "wh33les").Return(adminUser(t, "hunter2"), nil)

	svc, err := NewAuthService(repo, testSecret, 24)
	require.NoError(t, err)

	user, err := svc.Profile(context.Background(), "wh33les")
	require.NoError(t, err)
	assert.Equal(t, "Ashley", user.Name)
	assert.Empty(t, user.Password)
}

func TestProfileUnknownUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	svc, err := NewAuthService(repo, testSecret, 24)
	require.NoError(t, err)

	_, err = svc.Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, checkPassword("hunter2", hash))
	assert.False(t, checkPassword("wrong", hash))
}
