package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authTestSecret = "test-secret"

func signToken(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func adminAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(authTestSecret, "wh33les"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("admin_username")})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	r := adminAuthRouter()
	token := signToken(t, authTestSecret, "wh33les", time.Now().Add(time.Hour))

	w := doAuthRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wh33les")
}

func TestAdminAuthMissingHeader(t *testing.T) {
	w := doAuthRequest(adminAuthRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAdminAuthMalformedHeader(t *testing.T) {
	w := doAuthRequest(adminAuthRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token format")
}

func TestAdminAuthWrongSignature(t *testing.T) {
	token := signToken(t, "another-secret", "wh33les", time.Now().Add(time.Hour))
	w := doAuthRequest(adminAuthRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthExpiredToken(t *testing.T) {
	token := signToken(t, authTestSecret, "wh33les", time.Now().Add(-time.Hour))
	w := doAuthRequest(adminAuthRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthNonAdminSubjectForbidden(t *testing.T) {
	token := signToken(t, authTestSecret, "someone-else", time.Now().Add(time.Hour))
	w := doAuthRequest(adminAuthRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
}

func TestAdminAuthCaseInsensitiveBearer(t *testing.T) {
	token := signToken(t, authTestSecret, "wh33les", time.Now().Add(time.Hour))
	w := doAuthRequest(adminAuthRouter(), "bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
