package employee

import (
	"go-hrdash/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the employee procedures on the rpc group.
func RegisterRoutes(rpc *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	rpc.POST("/createEmployee",
		middleware.RateLimitByClient(5, 20),
		middleware.Idempotency(rdb),
		handler.Create,
	)
	rpc.GET("/getEmployees",
		middleware.RateLimitByClient(10, 40),
		handler.GetAll,
	)
	rpc.GET("/getEmployeeById",
		middleware.RateLimitByClient(10, 40),
		handler.GetByID,
	)
	rpc.POST("/updateEmployee",
		middleware.RateLimitByClient(5, 20),
		handler.Update,
	)
}
