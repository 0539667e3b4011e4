package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/dbmetrics"
	"github.com/m04kA/FloatBookingService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"client_id",
	"service_id",
	"location_id",
	"tank_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на сеансы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись
// Вызывается из коммита бронирования внутри сериализуемой транзакции
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"client_id",
			"service_id",
			"location_id",
			"tank_id",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			a.ID,
			a.ClientID,
			a.ServiceID,
			a.LocationID,
			a.TankID,
			a.StartTime,
			a.EndTime,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// FindByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до ее завершения
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// FindMany возвращает страницу записей по фильтру и общее количество подходящих записей
func (r *Repository) FindMany(ctx context.Context, filter domain.AppointmentFilter, page domain.Pagination) ([]*domain.Appointment, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := filterConditions(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: FindMany - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: FindMany - execute count: %w", ErrExecQuery, err)
	}
	if total == 0 {
		return []*domain.Appointment{}, 0, nil
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

	list, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// Update сохраняет изменяемые поля записи: статус, время, камеру и заметки
// Записи никогда не удаляются, только меняют статус
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", a.Status).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("tank_id", a.TankID).
		Set("notes", a.Notes).
		Set("updated_at", a.UpdatedAt).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// CountByDate считает записи (в любом статусе), начинающиеся в [from, to)
// locationID = nil означает все локации
func (r *Repository) CountByDate(ctx context.Context, locationID *string, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to})
	if locationID != nil {
		builder = builder.Where(squirrel.Eq{"location_id": *locationID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - execute count: %w", ErrExecQuery, err)
	}

	return count, nil
}

// ListActiveOverlapping возвращает активные (pending, confirmed) записи локации,
// пересекающие окно [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListActiveOverlapping(ctx context.Context, locationID string, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListExpiredPending возвращает записи pending, закончившиеся раньше before
// Внутри транзакции строки блокируются с SKIP LOCKED, чтобы параллельные воркеры не мешали друг другу
func (r *Repository) ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.Lt{"end_time": before}).
		OrderBy("end_time ASC").
		Limit(uint64(limit))
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredPending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// LockLocation берет транзакционную advisory-блокировку на локацию
// Коммиты бронирования одной локации выполняются строго по очереди
func (r *Repository) LockLocation(ctx context.Context, locationID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", locationID); err != nil {
		return fmt.Errorf("%w: LockLocation - acquire advisory lock: %w", ErrExecQuery, err)
	}
	return nil
}

func filterConditions(filter domain.AppointmentFilter) squirrel.And {
	where := squirrel.And{}
	if filter.ClientID != nil {
		where = append(where, squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.LocationID != nil {
		where = append(where, squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.Lt{"start_time": *filter.EndDate})
	}
	return where
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.ServiceID,
		&a.LocationID,
		&a.TankID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	list := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %w", ErrScanRow, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}
	return list, nil
}
