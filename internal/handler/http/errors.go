package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wh33les/HusbandsGames/internal/service"
)

// HandleServiceError maps service errors onto HTTP statuses in one place.
func HandleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrGameNotFound) {
		ErrorResponse(c, http.StatusNotFound, "Game not found")
	} else if errors.Is(err, service.ErrInvalidCredentials) {
		ErrorResponse(c, http.StatusUnauthorized, "Invalid admin credentials")
	} else {
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
