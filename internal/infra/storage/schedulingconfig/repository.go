package schedulingconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/dbmetrics"
	"github.com/m04kA/FloatBookingService/pkg/psqlbuilder"
)

const table = "location_scheduling_config"

// Repository репозиторий настроек расписания локаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает конфигурацию локации
// Если записи нет, возвращает ErrConfigNotFound: вызывающий подставляет значения по умолчанию
func (r *Repository) Get(ctx context.Context, locationID string) (*domain.LocationSchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"location_id",
		"slot_granularity_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.LocationSchedulingConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.LocationID,
		&c.SlotGranularityMinutes,
		&c.AdvanceBookingDays,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %w", ErrScanRow, err)
	}

	return &c, nil
}

// Upsert создает или обновляет конфигурацию локации
func (r *Repository) Upsert(ctx context.Context, c *domain.LocationSchedulingConfig) (*domain.LocationSchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("location_id", "slot_granularity_minutes", "advance_booking_days").
		Values(c.LocationID, c.SlotGranularityMinutes, c.AdvanceBookingDays).
		Suffix("ON CONFLICT (location_id) DO UPDATE SET " +
			"slot_granularity_minutes = EXCLUDED.slot_granularity_minutes, " +
			"advance_booking_days = EXCLUDED.advance_booking_days, updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return c, nil
}
