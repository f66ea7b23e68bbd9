package app

import (
	"database/sql"
	"net/http"

	"go-hrdash/internal/bootstrap"
	"go-hrdash/internal/config"
	"go-hrdash/internal/middleware"
	"go-hrdash/internal/migration"
	"go-hrdash/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infrastructure holds the connections shared by every process.
type Infrastructure struct {
	Config config.Config
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

// OpenInfrastructure connects the database (and Redis when configured). The
// schema is migrated when DB_AUTO_MIGRATE is set and always on SQLite.
func OpenInfrastructure(cfg config.Config) (*Infrastructure, error) {
	log := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &Infrastructure{Config: cfg, GormDB: gormDB, DB: sqlDB}

	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverSQLite {
		if err := migration.Run(gormDB); err != nil {
			infra.Close()
			return nil, err
		}
	}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Redis = rdb
	} else {
		log.Info("REDIS_ADDR not set, cache and idempotency disabled")
	}

	return infra, nil
}

func (i *Infrastructure) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

// outboxEnabled reports whether mutations should also write outbox rows. The
// outbox table only exists on PostgreSQL.
func (i *Infrastructure) outboxEnabled() bool {
	return i.Config.Kafka.Broker != "" && i.Config.Database.Driver == config.DriverPostgres
}

// NewHandler builds the gin engine with every route and wraps it in CORS.
func NewHandler(infra *Infrastructure, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.L()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ContextLogger(logger))

	if err := registerModules(router, infra, NewServices(infra, logger), logger); err != nil {
		return nil, err
	}

	return middleware.CORS(infra.Config.CORS.AllowedOrigins)(router), nil
}

// RunAPI serves the RPC surface until the process is signalled.
func RunAPI(cfg config.Config) error {
	logger := zap.L()

	infra, err := OpenInfrastructure(cfg)
	if err != nil {
		return err
	}
	defer infra.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, err := NewHandler(infra, logger)
	if err != nil {
		return err
	}

	return bootstrap.StartHTTPServer(
		handler,
		bootstrap.DefaultServerConfig(cfg.Port),
		bootstrap.NewStdoutAuditLogger(logger),
	)
}
