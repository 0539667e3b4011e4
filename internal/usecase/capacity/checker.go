package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	operatingHoursRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/operatinghours"
	schedulingConfigRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/schedulingconfig"
)

// Request окно, которое нужно проверить
type Request struct {
	LocationID string
	Start      time.Time
	End        time.Time
	// ExcludeAppointmentID запись, которая не учитывается при подсчете (перенос)
	ExcludeAppointmentID string
	Now                  time.Time
}

// Result итог проверки
type Result struct {
	Capacity int
	Occupied int
}

// Checker повторно считает занятость окна под блокировкой локации
// Должен вызываться внутри транзакции
type Checker struct {
	appointmentRepo AppointmentRepository
	blockedSlotRepo BlockedSlotRepository
	hoursRepo       OperatingHoursRepository
	configRepo      SchedulingConfigRepository
	inventory       ResourceInventory
	location        *time.Location
}

// NewChecker создает проверку вместимости
func NewChecker(
	appointmentRepo AppointmentRepository,
	blockedSlotRepo BlockedSlotRepository,
	hoursRepo OperatingHoursRepository,
	configRepo SchedulingConfigRepository,
	inventory ResourceInventory,
	location *time.Location,
) *Checker {
	if location == nil {
		location = time.UTC
	}
	return &Checker{
		appointmentRepo: appointmentRepo,
		blockedSlotRepo: blockedSlotRepo,
		hoursRepo:       hoursRepo,
		configRepo:      configRepo,
		inventory:       inventory,
		location:        location,
	}
}

// Location часовой пояс расписания
func (c *Checker) Location() *time.Location {
	return c.location
}

// Check проверяет, что окно можно занять
func (c *Checker) Check(ctx context.Context, req Request) (*Result, error) {
	if err := c.appointmentRepo.LockLocation(ctx, req.LocationID); err != nil {
		return nil, fmt.Errorf("%w: Check - lock location: %w", ErrInternal, err)
	}

	if req.Start.Before(req.Now) {
		return nil, ErrStartInPast
	}

	localStart := req.Start.In(c.location)
	hours, err := c.hoursRepo.Get(ctx, req.LocationID, domain.DayOfWeekOf(localStart))
	if err != nil && !errors.Is(err, operatingHoursRepo.ErrOperatingHoursNotFound) {
		return nil, fmt.Errorf("%w: Check - get operating hours: %w", ErrInternal, err)
	}
	if !hours.IsOpen() {
		return nil, ErrLocationClosed
	}

	inside, err := hours.Contains(req.Start, req.End, c.location)
	if err != nil {
		return nil, fmt.Errorf("%w: Check - operating window: %w", ErrInternal, err)
	}
	if !inside {
		return nil, fmt.Errorf("%w: open %s-%s", ErrOutsideOperatingHours, hours.OpenTime, hours.CloseTime)
	}

	cfg, err := c.configRepo.Get(ctx, req.LocationID)
	if err != nil {
		if !errors.Is(err, schedulingConfigRepo.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: Check - get scheduling config: %w", ErrInternal, err)
		}
		cfg = domain.DefaultSchedulingConfig(req.LocationID)
	}
	if cfg.HasAdvanceBookingLimit() {
		latest := cfg.LatestBookableDate(req.Now.In(c.location))
		if !localStart.Before(latest.AddDate(0, 0, 1)) {
			return nil, fmt.Errorf("%w: can only book %d days in advance", ErrTooFarInAdvance, cfg.AdvanceBookingDays)
		}
	}

	capacity, err := c.inventory.CountBookable(ctx, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("%w: Check - count tanks: %w", ErrInternal, err)
	}

	appointments, err := c.appointmentRepo.ListActiveOverlapping(ctx, req.LocationID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: Check - list appointments: %w", ErrInternal, err)
	}
	if req.ExcludeAppointmentID != "" {
		appointments = excludeAppointment(appointments, req.ExcludeAppointmentID)
	}

	blocks, err := c.blockedSlotRepo.ListForWindow(ctx, req.LocationID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: Check - list blocked slots: %w", ErrInternal, err)
	}

	occupied := domain.CountOccupied(req.Start, req.End, capacity, appointments, blocks, c.location)
	result := &Result{Capacity: capacity, Occupied: occupied}
	if occupied >= capacity {
		return result, fmt.Errorf("%w: %d/%d tanks taken", ErrSlotNotAvailable, occupied, capacity)
	}

	return result, nil
}

func excludeAppointment(list []*domain.Appointment, id string) []*domain.Appointment {
	filtered := make([]*domain.Appointment, 0, len(list))
	for _, a := range list {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
