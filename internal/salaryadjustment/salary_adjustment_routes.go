package salaryadjustment

import (
	"go-hrdash/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(rpc *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	rpc.POST("/createSalaryAdjustment",
		middleware.RateLimitByClient(5, 20),
		middleware.Idempotency(rdb),
		handler.Create,
	)
	rpc.GET("/getSalaryAdjustmentsByEmployee",
		middleware.RateLimitByClient(10, 40),
		handler.ListByEmployee,
	)
}
