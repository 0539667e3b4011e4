package config

import (
	"context"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// ConfigRepository интерфейс репозитория настроек расписания
type ConfigRepository interface {
	Get(ctx context.Context, locationID string) (*domain.LocationSchedulingConfig, error)
	Upsert(ctx context.Context, c *domain.LocationSchedulingConfig) (*domain.LocationSchedulingConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
