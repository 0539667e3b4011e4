package operatinghours

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

const table = "operating_hours"

var columns = []string{"location_id", "day_of_week", "open_time", "close_time", "active", "updated_at"}

// Repository хранилище часов работы локаций
// Первичный ключ (location_id, day_of_week): не больше одной записи на день недели
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает часы работы локации в день недели
func (r *Repository) Get(ctx context.Context, locationID string, dayOfWeek int) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"location_id": locationID, "day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.OperatingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.LocationID,
		&h.DayOfWeek,
		&h.OpenTime,
		&h.CloseTime,
		&h.Active,
		&h.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOperatingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan operating hours: %w", ErrScanRow, err)
	}

	return &h, nil
}

// ListByLocation возвращает часы работы локации по всем настроенным дням недели
func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.OperatingHours, 0, 7)
	for rows.Next() {
		var h domain.OperatingHours
		if err := rows.Scan(&h.LocationID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.Active, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByLocation - scan operating hours: %w", ErrScanRow, err)
		}
		list = append(list, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - rows error: %w", ErrScanRow, err)
	}

	return list, nil
}

// Upsert создает или заменяет часы работы на день недели
func (r *Repository) Upsert(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("location_id", "day_of_week", "open_time", "close_time", "active").
		Values(h.LocationID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.Active).
		Suffix("ON CONFLICT (location_id, day_of_week) DO UPDATE SET " +
			"open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, " +
			"active = EXCLUDED.active, updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return h, nil
}
