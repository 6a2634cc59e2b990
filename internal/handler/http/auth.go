// Package http contains the gin handlers of the catalog API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/dto"
	"github.com/wh33les/HusbandsGames/internal/service"
)

// AuthHandler serves the login and session-inspection endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /login. A malformed body is reported the same way as
// bad credentials would be, just with a 400.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: username and password required")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		User:        dto.UserInfo{Username: user.Username, Name: user.Name},
	})
}

// Me handles GET /admin/me. The auth middleware has already validated the
// token and stored the admin username in the context.
func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString("admin_username")
	user, err := h.authService.Profile(c.Request.Context(), username)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.UserInfo{Username: user.Username, Name: user.Name})
}
