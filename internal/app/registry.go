package app

import (
	"go-hrdash/internal/employee"
	"go-hrdash/internal/export"
	"go-hrdash/internal/messaging/kafka"
	"go-hrdash/internal/middleware"
	"go-hrdash/internal/promotionhistory"
	"go-hrdash/internal/promotionschedule"
	"go-hrdash/internal/rbac"
	"go-hrdash/internal/salaryadjustment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services is the set of domain services shared by the API, the consumer and
// the operator CLI.
type Services struct {
	Employee          employee.Service
	PromotionHistory  promotionhistory.Service
	SalaryAdjustment  salaryadjustment.Service
	PromotionSchedule promotionschedule.Service
}

func NewServices(infra *Infrastructure, logger *zap.Logger) Services {
	db, gormDB := infra.DB, infra.GormDB

	employeeRepo := employee.NewRepository(gormDB)
	historyRepo := promotionhistory.NewRepository(gormDB)
	adjustmentRepo := salaryadjustment.NewRepository(gormDB)
	scheduleRepo := promotionschedule.NewRepository(gormDB)

	services := Services{
		Employee:          employee.NewService(db, employeeRepo, infra.Redis, logger),
		PromotionHistory:  promotionhistory.NewService(db, historyRepo, logger),
		SalaryAdjustment:  salaryadjustment.NewService(db, adjustmentRepo, logger),
		PromotionSchedule: promotionschedule.NewService(db, scheduleRepo, logger),
	}

	if infra.outboxEnabled() {
		outboxRepo := kafka.NewOutboxRepository(db)
		services.Employee = employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, infra.Redis, logger)
		services.PromotionSchedule = promotionschedule.NewServiceWithOutbox(db, scheduleRepo, outboxRepo, logger)
	}

	return services
}

func registerModules(
	router *gin.Engine,
	infra *Infrastructure,
	services Services,
	logger *zap.Logger,
) error {
	rdb := infra.Redis

	// --- Handlers ---
	employeeHandler := employee.NewHandler(services.Employee, logger)
	historyHandler := promotionhistory.NewHandler(services.PromotionHistory, logger)
	adjustmentHandler := salaryadjustment.NewHandler(services.SalaryAdjustment, logger)
	scheduleHandler := promotionschedule.NewHandler(services.PromotionSchedule, logger)
	exportHandler := export.NewHandler(services.Employee, services.PromotionSchedule, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.GET("/rpc/healthcheck", healthcheck(infra.DB))

	protected := api.Group("", middleware.AuthMiddleware(infra.Config.Auth.JWTSecret))
	rpc := protected.Group("/rpc")
	exports := protected.Group("")

	// roles only exist when tokens do
	if infra.Config.Auth.JWTSecret != "" {
		enforcer, err := rbac.NewEnforcer()
		if err != nil {
			return err
		}
		rpc.Use(rbac.Authorize(enforcer, rbac.ResourceRPC, logger))
		exports.Use(rbac.Authorize(enforcer, rbac.ResourceExport, logger))
	}

	{
		employee.RegisterRoutes(rpc, employeeHandler, rdb)
		promotionhistory.RegisterRoutes(rpc, historyHandler, rdb)
		salaryadjustment.RegisterRoutes(rpc, adjustmentHandler, rdb)
		promotionschedule.RegisterRoutes(rpc, scheduleHandler, rdb)
	}
	export.RegisterRoutes(exports, exportHandler)

	return nil
}
