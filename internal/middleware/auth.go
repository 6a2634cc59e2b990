// Package middleware provides the gin middleware of the catalog API.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// ErrMissingAuthHeader indicates the Authorization header was absent.
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// AdminAuth returns a middleware that verifies a bearer JWT and requires
// its subject to be the configured admin account. An invalid or expired
// token yields 401; a valid token for anyone else yields 403, mirroring
// the split the frontend expects.
func AdminAuth(jwtSecret, adminUsername string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for AdminAuth middleware")
	}
	if adminUsername == "" {
		panic("admin username cannot be empty for AdminAuth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				logrus.Warn("AdminAuth: missing Authorization header")
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header is required"})
			} else {
				logrus.WithError(err).Warn("AdminAuth: malformed Authorization header")
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token format"})
			}
			c.Abort()
			return
		}

		claims, err := validateToken(tokenStr, jwtSecret)
		if err != nil {
			logrus.WithError(err).Warn("AdminAuth: invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			logrus.Error("AdminAuth: 'sub' claim missing in token")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			c.Abort()
			return
		}
		if sub != adminUsername {
			logrus.WithField("subject", sub).Warn("AdminAuth: token subject is not the admin account")
			c.JSON(http.StatusForbidden, gin.H{"detail": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("admin_username", sub)
		logrus.WithField("username", sub).Debug("AdminAuth: admin authenticated")
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}
	return parts[1], nil
}

func validateToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}
