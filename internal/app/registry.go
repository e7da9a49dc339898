package app

import (
	"go-ems/internal/auth"
	"go-ems/internal/config"
	"go-ems/internal/department"
	"go-ems/internal/employee"
	"go-ems/internal/health"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"
	"go-ems/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(rbac.DefaultPolicies)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	departmentService := department.NewService(gormDB, departmentRepo, rdb, logger)

	var employeeService employee.Service
	if cfg.EventDeliveryMode == config.DeliveryDirect {
		employeeService = employee.NewService(gormDB, employeeRepo, departmentService, hasher, employee.NewKafkaEventPublisher(writer), logger)
	} else {
		employeeService = employee.NewServiceWithOutbox(gormDB, employeeRepo, departmentService, hasher, outboxRepo, logger)
	}

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	healthHandler := health.NewHandler("go-ems", map[string]health.Pinger{
		"postgres": health.PostgresPinger(gormDB),
		"redis":    health.RedisPinger(rdb),
	}, logger)

	// --- Routes Registration ---
	health.RegisterRoutes(router, healthHandler)

	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, rbacService, cfg.JWTSecret, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, rdb, cfg.JWTSecret, logger)
		employee.RegisterInternalRoutes(api, employeeHandler, cfg.InternalAPIKey)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	return nil
}
