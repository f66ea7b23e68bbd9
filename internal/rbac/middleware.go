package rbac

import (
	"net/http"

	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleKey is where the auth middleware leaves the token's role claim.
const RoleKey = "role"

// ActionOf maps queries to read and mutations to write.
func ActionOf(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	}
	return ActionWrite
}

// Authorize rejects requests whose role may not act on resource. It must run
// after the auth middleware.
func Authorize(enforcer *casbin.Enforcer, resource string, logger ...*zap.Logger) gin.HandlerFunc {
	log := zap.L().Named("rbac")
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0].Named("rbac")
	}

	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		action := ActionOf(c.Request.Method)

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			log.Error("enforce failed", zap.String("role", role), zap.Error(err))
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}
		if !allowed {
			log.Warn("access denied",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.String("path", c.FullPath()),
			)
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
