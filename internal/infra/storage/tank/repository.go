package tank

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/dbmetrics"
	"github.com/m04kA/FloatBookingService/pkg/psqlbuilder"
)

// Repository чтение инвентаря камер
// Жизненным циклом камер управляет внешний сервис инвентаря, здесь только подсчет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория камер
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountBookable возвращает R: число активных камер локации, не выведенных на обслуживание
// Вызывается в каждом запросе, значение не кэшируется
func (r *Repository) CountBookable(ctx context.Context, locationID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	excluded := make([]string, len(domain.UnbookableTankStatuses))
	for i, s := range domain.UnbookableTankStatuses {
		excluded[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("tanks").
		Where(squirrel.Eq{"location_id": locationID, "active": true}).
		Where(squirrel.NotEq{"status": excluded}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBookable - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBookable - execute count: %w", ErrExecQuery, err)
	}

	return count, nil
}
