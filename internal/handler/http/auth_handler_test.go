package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wh33les/HusbandsGames/internal/domain"
	"github.com/wh33les/HusbandsGames/internal/repository"
	"github.com/wh33les/HusbandsGames/internal/repository/mocks"
	"github.com/wh33les/HusbandsGames/internal/service"
)

func authRouter(t *testing.T, repo *mocks.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authService, err := service.NewAuthService(repo, "test-secret", 24)
	require.NoError(t, err)
	h := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/login", h.Login)
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandlerSuccess(t *testing.T) {
	hash, err := service.HashPassword("hunter2")
	require.NoError(t, err)

	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "wh33les").Return(&domain.User{
		ID: 1, Username: "wh33les", Password: hash, Name: "Ashley",
	}, nil)

	w := postLogin(authRouter(t, repo), `{"username":"wh33les","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "wh33les", resp.User.Username)
	assert.Equal(t, "Ashley", resp.User.Name)
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	hash, err := service.HashPassword("hunter2")
	require.NoError(t, err)

	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "wh33les").Return(&domain.User{
		ID: 1, Username: "wh33les", Password: hash,
	}, nil)

	w := postLogin(authRouter(t, repo), `{"username":"wh33les","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid admin credentials"}`, w.Body.String())
}

func TestLoginHandlerUnknownUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, repository.ErrUserNotFound)

	// Unknown user and wrong password are indistinguishable in the response.
	w := postLogin(authRouter(t, repo), `{"username":"nobody","password":"hunter2"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid admin credentials"}`, w.Body.String())
}

func TestLoginHandlerMissingFields(t *testing.T) {
	repo := new(mocks.UserRepository)
	w := postLogin(authRouter(t, repo), `{"username":"wh33les"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username and password required")
}
