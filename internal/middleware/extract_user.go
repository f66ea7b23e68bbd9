package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// CurrentUserID is the authenticated subject, or "" when auth is disabled or
// the request is anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// clientKey identifies the caller for throttling and idempotency: the user
// when known, the client IP otherwise.
func clientKey(c *gin.Context) string {
	if uid := CurrentUserID(c); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.ClientIP()
}
