package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

type HealthStatus struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Services  []Component `json:"services"`
}

type Component struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker pings the backing stores. A down Redis only degrades
// the report since the board works without its cache; the database is
// the one hard dependency.
type HealthChecker struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}

	if h.DB != nil {
		c := h.ping(ctx, "postgres", func(ctx context.Context) error {
			sqlDB, err := h.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
		if c.Status != "up" {
			status.Status = "degraded"
		}
		status.Services = append(status.Services, c)
	}

	if h.Redis != nil {
		c := h.ping(ctx, "redis", func(ctx context.Context) error {
			return h.Redis.Ping(ctx).Err()
		})
		if c.Status != "up" {
			status.Status = "degraded"
		}
		status.Services = append(status.Services, c)
	}

	return status
}

func (h *HealthChecker) ping(ctx context.Context, name string, fn func(context.Context) error) Component {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	c := Component{Name: name, Status: "up"}
	if err := fn(ctx); err != nil {
		c.Status = "down"
		c.Message = err.Error()
	}
	return c
}
