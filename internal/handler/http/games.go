package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/dto"
	"github.com/wh33les/HusbandsGames/internal/service"
)

// GamesHandler serves the public listing and the admin CRUD endpoints.
type GamesHandler struct {
	catalog *service.CatalogService
}

func NewGamesHandler(catalog *service.CatalogService) *GamesHandler {
	return &GamesHandler{catalog: catalog}
}

// List handles GET /games/ with skip/limit pagination. Public.
func (h *GamesHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	games, err := h.catalog.List(c.Request.Context(), skip, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewGameViews(games))
}

// Get handles GET /games/:id. Public.
func (h *GamesHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	game, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewGameView(*game))
}

// Create handles POST /admin/games.
func (h *GamesHandler) Create(c *gin.Context) {
	var req dto.GameCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateGame: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	game, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewGameView(*game))
}

// Update handles PUT /admin/games/:id. Only fields present in the body
// are changed.
func (h *GamesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.GameUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateGame: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	game, err := h.catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewGameView(*game))
}

// Delete handles DELETE /admin/games/:id.
func (h *GamesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	title, err := h.catalog.Delete(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Game '%s' deleted successfully", title),
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid game id")
		return 0, false
	}
	return uint(id), true
}
