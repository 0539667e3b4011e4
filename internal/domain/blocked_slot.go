package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const week = 7 * 24 * time.Hour

// BlockedSlot окно, в которое ресурсы недоступны (обслуживание, закрытие)
// Без TankID блокирует всю локацию
type BlockedSlot struct {
	ID         string
	LocationID string
	TankID     *string
	StartTime  time.Time
	EndTime    time.Time
	Reason     string
	Recurring  bool // повторяется еженедельно в то же локальное время
	CreatedAt  time.Time
}

// NewBlockedSlotParams параметры создания блокировки
type NewBlockedSlotParams struct {
	LocationID string
	TankID     *string
	StartTime  time.Time
	EndTime    time.Time
	Reason     string
	Recurring  bool
	Now        time.Time
}

// NewBlockedSlot валидирует и создает блокировку
func NewBlockedSlot(p NewBlockedSlotParams) (*BlockedSlot, error) {
	locationID := strings.TrimSpace(p.LocationID)
	if locationID == "" {
		return nil, fmt.Errorf("%w: locationId is required", ErrValidation)
	}
	if p.TankID != nil && strings.TrimSpace(*p.TankID) == "" {
		return nil, fmt.Errorf("%w: tankId must not be empty", ErrValidation)
	}
	if p.StartTime.IsZero() || p.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrValidation)
	}
	if !p.EndTime.After(p.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrValidation)
	}
	if p.Recurring && p.EndTime.Sub(p.StartTime) >= week {
		return nil, fmt.Errorf("%w: recurring block must be shorter than a week", ErrValidation)
	}
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if len(reason) > MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrValidation, MaxReasonLength)
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	return &BlockedSlot{
		ID:         uuid.NewString(),
		LocationID: locationID,
		TankID:     p.TankID,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		Reason:     reason,
		Recurring:  p.Recurring,
		CreatedAt:  now,
	}, nil
}

// IsLocationWide true, если блокировка снимает все ресурсы локации
func (b *BlockedSlot) IsLocationWide() bool {
	return b.TankID == nil
}

// Overlaps проверяет пересечение блокировки (или ее еженедельного повтора) с окном [from, to)
// Повторы считаются в часовом поясе loc, чтобы переход на летнее время не сдвигал блокировку
func (b *BlockedSlot) Overlaps(from, to time.Time, loc *time.Location) bool {
	if !b.Recurring {
		return from.Before(b.EndTime) && to.After(b.StartTime)
	}
	if !to.After(b.StartTime) {
		return false
	}

	if loc == nil {
		loc = time.UTC
	}
	start := b.StartTime.In(loc)
	length := b.EndTime.Sub(b.StartTime)

	k := int(from.Sub(start) / week)
	if k < 0 {
		k = 0
	}
	for i := k - 1; i <= k+1; i++ {
		if i < 0 {
			continue
		}
		occStart := start.AddDate(0, 0, 7*i)
		occEnd := occStart.Add(length)
		if from.Before(occEnd) && to.After(occStart) {
			return true
		}
	}
	return false
}

// BlockedSlotFilter фильтр списка блокировок
type BlockedSlotFilter struct {
	LocationID *string
	TankID     *string
	StartDate  *time.Time // блокировки, заканчивающиеся после StartDate
	EndDate    *time.Time // блокировки, начинающиеся до EndDate
}
