package http

import "github.com/gin-gonic/gin"

// ErrorResponse writes the FastAPI-compatible error body the existing
// frontend already parses: {"detail": "..."}.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"detail": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}
