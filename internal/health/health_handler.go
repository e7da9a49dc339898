package health

import (
	"context"
	"net/http"
	"time"

	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func PostgresPinger(db *gorm.DB) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

func RedisPinger(rdb *redis.Client) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}

type Handler struct {
	service string
	deps    map[string]Pinger
	timeout time.Duration
	logger  *zap.Logger
}

// NewHandler checks every dependency in deps on readiness probes.
func NewHandler(service string, deps map[string]Pinger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{service: service, deps: deps, timeout: 2 * time.Second, logger: l}
}

func (h *Handler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "alive", "service": h.service})
}

func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := make(map[string]string, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warn("dependency not ready", zap.String("dependency", name), zap.Error(err))
			status[name] = "unavailable"
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "One or more dependencies are unavailable", status)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ready", "dependencies": status})
}

func RegisterRoutes(r gin.IRouter, h *Handler) {
	group := r.Group("/health")
	group.GET("/live", h.Live)
	group.GET("/ready", h.Ready)
}
