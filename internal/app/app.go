package app

import (
	"context"

	"go-ems/internal/config"
	"go-ems/internal/shared/connection"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the infrastructure and mounts every module on router.
// The returned func releases the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, connectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	closers := []func(){func() { _ = sqlDB.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.RunMigrations {
		if err := connection.RunMigrations(ctx, gormDB, logger.Named("migrate")); err != nil {
			cleanup()
			return nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		cleanup()
		return nil, err
	}
	closers = append(closers, func() { _ = rdb.Close() })

	var writer *kafkago.Writer
	if cfg.EventDeliveryMode == config.DeliveryDirect {
		writer, err = connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = writer.Close() })
	}

	if err := registerModules(router, cfg, gormDB, rdb, writer, logger); err != nil {
		cleanup()
		return nil, err
	}

	logger.Info("modules registered", zap.String("event_delivery_mode", cfg.EventDeliveryMode))
	return cleanup, nil
}
