package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/dbmetrics"
	"github.com/m04kA/FloatBookingService/pkg/psqlbuilder"
)

const table = "blocked_slots"

var columns = []string{
	"id",
	"location_id",
	"tank_id",
	"start_time",
	"end_time",
	"reason",
	"recurring",
	"created_at",
}

// Repository репозиторий блокировок расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "location_id", "tank_id", "start_time", "end_time", "reason", "recurring").
		Values(b.ID, b.LocationID, b.TankID, b.StartTime, b.EndTime, b.Reason, b.Recurring).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// Delete удаляет блокировку (изменение блокировки = удаление и создание заново)
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}

// FindMany возвращает страницу блокировок по фильтру и общее количество
func (r *Repository) FindMany(ctx context.Context, filter domain.BlockedSlotFilter, page domain.Pagination) ([]*domain.BlockedSlot, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.LocationID != nil {
		where = append(where, squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.TankID != nil {
		where = append(where, squirrel.Eq{"tank_id": *filter.TankID})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.Gt{"end_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.Lt{"start_time": *filter.EndDate})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: FindMany - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: FindMany - execute count: %w", ErrExecQuery, err)
	}
	if total == 0 {
		return []*domain.BlockedSlot{}, 0, nil
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("start_time ASC", "id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: FindMany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: FindMany - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	list, err := scanBlockedSlots(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListForWindow возвращает блокировки локации, которые могут задеть окно [from, to):
// разовые, пересекающие окно, и все еженедельные, начавшиеся до конца окна
// Точная проверка повторов выполняется в domain.BlockedSlot.Overlaps
func (r *Repository) ListForWindow(ctx context.Context, locationID string, from, to time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Or{
			squirrel.Gt{"end_time": from},
			squirrel.Eq{"recurring": true},
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForWindow - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlockedSlots(rows)
}

func scanBlockedSlots(rows *sql.Rows) ([]*domain.BlockedSlot, error) {
	list := make([]*domain.BlockedSlot, 0)
	for rows.Next() {
		var b domain.BlockedSlot
		if err := rows.Scan(
			&b.ID,
			&b.LocationID,
			&b.TankID,
			&b.StartTime,
			&b.EndTime,
			&b.Reason,
			&b.Recurring,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan blocked slot: %w", ErrScanRow, err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}
	return list, nil
}
