package modules

import (
	"context"
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

// HealthModule exposes liveness of the backing stores and expvar counters.
type HealthModule struct {
	DBPing func(ctx context.Context) error
	Redis  *redis.Client
}

func NewHealthModule(dbPing func(ctx context.Context) error, rdb *redis.Client) *HealthModule {
	return &HealthModule{DBPing: dbPing, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}

func (m *HealthModule) health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"db": "ok", "redis": "ok"}
	if m.DBPing != nil {
		if err := m.DBPing(c.Request.Context()); err != nil {
			checks["db"] = "down"
			status = http.StatusServiceUnavailable
		}
	}
	if m.Redis != nil {
		if err := helpers.PingRedis(c.Request.Context(), m.Redis); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
	} else {
		checks["redis"] = "disabled"
	}
	if status != http.StatusOK {
		response.Error(c, status, "Service unavailable", checks)
		return
	}
	response.Success(c, status, checks)
}
