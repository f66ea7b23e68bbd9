package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// requestID reuses the caller's id when it sent one, otherwise mints a new one.
func requestID(c *gin.Context) string {
	if rid := c.GetHeader(RequestIDHeader); rid != "" {
		return rid
	}
	return uuid.New().String()
}
