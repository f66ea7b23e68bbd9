package promotionschedule

import (
	"go-hrdash/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(rpc *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	rpc.POST("/createPromotionSchedule",
		middleware.RateLimitByClient(5, 20),
		middleware.Idempotency(rdb),
		handler.Create,
	)
	rpc.POST("/updatePromotionSchedule",
		middleware.RateLimitByClient(5, 20),
		handler.Update,
	)
	rpc.GET("/getAllPromotionSchedules",
		middleware.RateLimitByClient(10, 40),
		handler.ListAll,
	)
	rpc.GET("/getUpcomingPromotions",
		middleware.RateLimitByClient(10, 40),
		handler.ListUpcoming,
	)
}
