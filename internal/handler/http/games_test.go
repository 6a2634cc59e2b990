package http

import (
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

func gamesRouter(repo *mocks.GameRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalog := service.NewCatalogService(repo, nil, nil, nil)
	h := NewGamesHandler(catalog)

	r := gin.New()
	r.GET("/games/", h.List)
	r.GET("/games/:id", h.Get)
	r.POST("/admin/games", h.Create)
	r.PUT("/admin/games/:id", h.Update)
	r.DELETE("/admin/games/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListGamesFieldOrder(t *testing.T) {
	repo := new(mocks.GameRepository)
	platform := "PS4"
	price := 21.26
	repo.On("ListAll", mock.Anything).Return([]domain.Game{
		{ID: 1, Title: "Doom Eternal", Platform: &platform, Price: &price},
	}, nil)

	w := serve(gamesRouter(repo), http.MethodGet, "/games/", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"title":"Doom Eternal"`)
	// Descriptive fields serialize before the database bookkeeping, so the
	// first discovered column is the title, not the id.
	assert.Less(t, strings.Index(body, `"title"`), strings.Index(body, `"id"`))
	assert.Less(t, strings.Index(body, `"id"`), strings.Index(body, `"created_at"`))
}

func TestListGamesPaginationQuery(t *testing.T) {
	repo := new(mocks.GameRepository)
	repo.On("ListAll", mock.Anything).Return([]domain.Game{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
	}, nil)

	w := serve(gamesRouter(repo), http.MethodGet, "/games/?skip=1&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"B"`)
	assert.NotContains(t, w.Body.String(), `"title":"A"`)
}

func TestGetGameNotFound(t *testing.T) {
	repo := new(mocks.GameRepository)
	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, repository.ErrGameNotFound)

	w := serve(gamesRouter(repo), http.MethodGet, "/games/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Game not found"}`, w.Body.String())
}

func TestGetGameInvalidID(t *testing.T) {
	repo := new(mocks.GameRepository)
	w := serve(gamesRouter(repo), http.MethodGet, "/games/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid game id")
}

func TestCreateGame(t *testing.T) {
	repo := new(mocks.GameRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Game) bool {
		return g.Title == "Hades" && g.Opened == false
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Game).ID = 7
	}).Return(nil)

	w := serve(gamesRouter(repo), http.MethodPost, "/admin/games", `{"title":"Hades"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	repo.AssertExpectations(t)
}

func TestCreateGameMissingTitle(t *testing.T) {
	repo := new(mocks.GameRepository)
	w := serve(gamesRouter(repo), http.MethodPost, "/admin/games", `{"platform":"PC"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestUpdateGamePartial(t *testing.T) {
	repo := new(mocks.GameRepository)
	platform := "PS4"
	price := 21.26
	repo.On("FindByID", mock.Anything, uint(7)).Return(
		&domain.Game{ID: 7, Title: "Doom Eternal", Platform: &platform, Price: &price}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(g *domain.Game) bool {
		return *g.Platform == "PS5" && *g.Price == 21.26
	})).Return(nil)

	w := serve(gamesRouter(repo), http.MethodPut, "/admin/games/7", `{"platform":"PS5"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"platform":"PS5"`)
	assert.Contains(t, w.Body.String(), `"price":21.26`)
	repo.AssertExpectations(t)
}

func TestDeleteGameMessage(t *testing.T) {
	repo := new(mocks.GameRepository)
	repo.On("FindByID", mock.Anything, uint(3)).Return(&domain.Game{ID: 3, Title: "Okami"}, nil)
	repo.On("Delete", mock.Anything, uint(3)).Return(nil)

	w := serve(gamesRouter(repo), http.MethodDelete, "/admin/games/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Game 'Okami' deleted successfully"}`, w.Body.String())
}

func TestDeleteGameNotFound(t *testing.T) {
	repo := new(mocks.GameRepository)
	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, repository.ErrGameNotFound)

	w := serve(gamesRouter(repo), http.MethodDelete, "/admin/games/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Game not found"}`, w.Body.String())
}
