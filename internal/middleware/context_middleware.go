package middleware

import (
	"time"

	"go-hrdash/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger tags every request with a request id and a scoped logger that
// services pick up through contextutil.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	base := logger.Named("http")

	return func(c *gin.Context) {
		rid := requestID(c)
		c.Header(RequestIDHeader, rid)
		c.Set("request_id", rid)

		reqLogger := base.With(zap.String("request_id", rid))

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		// auth may have attached the actor after this middleware ran
		contextutil.GetLogger(c.Request.Context(), reqLogger).Debug("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
