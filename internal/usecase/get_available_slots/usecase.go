package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/FloatBookingService/internal/domain"
	operatingHoursRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/operatinghours"
	schedulingConfigRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/schedulingconfig"
	catalogClient "github.com/m04kA/FloatBookingService/internal/integrations/catalogservice"
)

var tracer = otel.Tracer("floatbooking/usecase/get_available_slots")

// UseCase use case для получения слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockedSlotRepo BlockedSlotRepository
	hoursRepo       OperatingHoursRepository
	configRepo      SchedulingConfigRepository
	inventory       ResourceInventory
	catalog         ServiceCatalog
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockedSlotRepo BlockedSlotRepository,
	hoursRepo OperatingHoursRepository,
	configRepo SchedulingConfigRepository,
	inventory ResourceInventory,
	catalog ServiceCatalog,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockedSlotRepo: blockedSlotRepo,
		hoursRepo:       hoursRepo,
		configRepo:      configRepo,
		inventory:       inventory,
		catalog:         catalog,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
// Отсутствие слотов (закрытый день, неизвестная локация, нет камер) не является ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "GetAvailableSlots")
	defer span.End()

	uc.logger.Info("GetAvailableSlots: location=%s, service=%s, date=%s",
		req.LocationID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("location.id", req.LocationID),
		attribute.String("service.id", req.ServiceID),
		attribute.String("date", req.Date.Format(domain.DateFormat)),
	)

	now := uc.timeProvider.Now().In(uc.location)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	// 2. Длительность сеанса
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Настройки расписания локации
	cfg, err := uc.configRepo.Get(ctx, req.LocationID)
	if err != nil {
		if !errors.Is(err, schedulingConfigRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
			return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		cfg = domain.DefaultSchedulingConfig(req.LocationID)
	}

	response := &Response{
		LocationID:         req.LocationID,
		ServiceID:          req.ServiceID,
		Date:               date,
		DurationMinutes:    duration,
		GranularityMinutes: cfg.SlotGranularityMinutes,
		Slots:              []domain.Slot{},
	}

	outOfRange := isDateInPast(date, now) || isBeyondAdvanceLimit(date, now, cfg)

	// 4. Часы работы на день недели
	hours, err := uc.hoursRepo.Get(ctx, req.LocationID, domain.DayOfWeekOf(date))
	if err != nil && !errors.Is(err, operatingHoursRepo.ErrOperatingHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get operating hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}
	if !hours.IsOpen() {
		uc.logger.Info("GetAvailableSlots: location %s is closed on %s", req.LocationID, date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Количество камер
	capacity, err := uc.inventory.CountBookable(ctx, req.LocationID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count tanks: %v", err)
		return nil, fmt.Errorf("%w: failed to count tanks: %v", ErrInternal, err)
	}
	if capacity == 0 {
		uc.logger.Info("GetAvailableSlots: location %s has no bookable tanks", req.LocationID)
		return response, nil
	}

	// Вне окна бронирования: рабочий день отдается целиком, все слоты недоступны
	if outOfRange {
		slots, err := CalculateSlots(CalculateParams{
			Date:               date,
			Hours:              hours,
			Capacity:           capacity,
			DurationMinutes:    duration,
			GranularityMinutes: cfg.SlotGranularityMinutes,
			Location:           uc.location,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to calculate slots: %v", err)
			return nil, err
		}
		uc.logger.Info("GetAvailableSlots: date %s is outside the bookable range", date.Format(domain.DateFormat))
		response.Slots = markUnavailable(slots)
		return response, nil
	}

	// 6. Записи и блокировки в рабочем окне
	open, closeAt, err := hours.Window(date, uc.location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid operating window: %v", err)
		return nil, fmt.Errorf("%w: invalid operating window: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListActiveOverlapping(ctx, req.LocationID, open, closeAt)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	blocks, err := uc.blockedSlotRepo.ListForWindow(ctx, req.LocationID, open, closeAt)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	// 7. Расчет слотов
	slots, err := CalculateSlots(CalculateParams{
		Date:               date,
		Hours:              hours,
		Capacity:           capacity,
		DurationMinutes:    duration,
		GranularityMinutes: cfg.SlotGranularityMinutes,
		Appointments:       appointments,
		Blocks:             blocks,
		Location:           uc.location,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to calculate slots: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for location=%s, date=%s (capacity=%d)",
		len(slots), req.LocationID, date.Format(domain.DateFormat), capacity)

	response.Slots = slots
	return response, nil
}

func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	duration, err := uc.catalog.GetServiceDuration(ctx, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service %s not found", req.ServiceID)
			return 0, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceInactive):
			uc.logger.Warn("GetAvailableSlots: service %s is inactive", req.ServiceID)
			return 0, ErrServiceInactive
		}
		uc.logger.Error("GetAvailableSlots: failed to get service %s: %v", req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateDuration(duration); err != nil {
		uc.logger.Error("GetAvailableSlots: catalog returned invalid duration %d for service %s", duration, req.ServiceID)
		return 0, fmt.Errorf("%w: catalog duration: %v", ErrInternal, err)
	}
	return duration, nil
}
