package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FloatBookingService/internal/domain"
	blockedSlotRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/blockedslot"
	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
	"github.com/m04kA/FloatBookingService/pkg/ptr"
)

// Service сервис управления календарем локации: блокировки и часы работы
type Service struct {
	blockedSlotRepo    BlockedSlotRepository
	operatingHoursRepo OperatingHoursRepository
	timeProvider       TimeProvider
	logger             Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	blockedSlotRepo BlockedSlotRepository,
	operatingHoursRepo OperatingHoursRepository,
	logger Logger,
) *Service {
	return &Service{
		blockedSlotRepo:    blockedSlotRepo,
		operatingHoursRepo: operatingHoursRepo,
		timeProvider:       realTimeProvider{},
		logger:             logger,
	}
}

// ListBlockedSlots возвращает страницу блокировок по фильтру
func (s *Service) ListBlockedSlots(ctx context.Context, req *models.ListBlockedSlotsRequest) (*models.BlockedSlotListResponse, error) {
	s.logger.Info("ListBlockedSlots: fetching blocked slots page=%d, limit=%d", req.Page, req.Limit)

	page, err := domain.NewPagination(req.Page, req.Limit)
	if err != nil {
		s.logger.Warn("ListBlockedSlots: invalid pagination: %v", err)
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	filter := domain.BlockedSlotFilter{
		LocationID: req.LocationID,
		TankID:     req.TankID,
		StartDate:  req.StartDate,
	}
	if req.EndDate != nil {
		// endDate включительно: блокировки, начинающиеся до конца дня
		filter.EndDate = ptr.Ptr(req.EndDate.AddDate(0, 0, 1))
	}

	list, total, err := s.blockedSlotRepo.FindMany(ctx, filter, page)
	if err != nil {
		s.logger.Error("ListBlockedSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedSlots: fetched %d of %d blocked slots", len(list), total)
	return models.FromDomainBlockedSlotPage(domain.NewPage(list, total, page)), nil
}

// CreateBlockedSlot создает блокировку
// Существующие записи в окне блокировки не отменяются, новые записи в него не принимаются
func (s *Service) CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("CreateBlockedSlot: location=%s, tank=%v, %s - %s by staff=%s",
		req.LocationID, ptr.Deref(req.TankID, "*"), req.StartTime, req.EndTime, req.StaffID)

	block, err := domain.NewBlockedSlot(domain.NewBlockedSlotParams{
		LocationID: req.LocationID,
		TankID:     req.TankID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
		Recurring:  req.Recurring,
		Now:        s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Warn("CreateBlockedSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blockedSlotRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlockedSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedSlot: blocked slot id=%s created", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// DeleteBlockedSlot удаляет блокировку
func (s *Service) DeleteBlockedSlot(ctx context.Context, id string) error {
	s.logger.Info("DeleteBlockedSlot: deleting blocked slot id=%s", id)

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: blockedSlotId is required", ErrInvalidInput)
	}

	if err := s.blockedSlotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("DeleteBlockedSlot: blocked slot id=%s not found", id)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("DeleteBlockedSlot: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedSlot: blocked slot id=%s deleted", id)
	return nil
}

// ListOperatingHours возвращает часы работы локации по дням недели
// Дни без записи считаются закрытыми и в ответ не попадают
func (s *Service) ListOperatingHours(ctx context.Context, locationID string) (*models.OperatingHoursListResponse, error) {
	s.logger.Info("ListOperatingHours: fetching operating hours for location=%s", locationID)

	if strings.TrimSpace(locationID) == "" {
		return nil, fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	list, err := s.operatingHoursRepo.ListByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("ListOperatingHours: repository error for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: ListOperatingHours - repository error: %v", ErrInternal, err)
	}

	days := make([]models.OperatingHoursResponse, 0, len(list))
	for _, h := range list {
		days = append(days, *models.FromDomainOperatingHours(h))
	}

	return &models.OperatingHoursListResponse{LocationID: locationID, Days: days}, nil
}

// UpsertOperatingHours устанавливает часы работы на день недели
func (s *Service) UpsertOperatingHours(ctx context.Context, locationID string, dayOfWeek int, req *models.UpsertOperatingHoursRequest) (*models.OperatingHoursResponse, error) {
	s.logger.Info("UpsertOperatingHours: location=%s, day=%d, %s - %s by staff=%s",
		locationID, dayOfWeek, req.OpenTime, req.CloseTime, req.StaffID)

	hours, err := domain.NewOperatingHours(locationID, dayOfWeek, req.OpenTime, req.CloseTime, ptr.Deref(req.Active, true))
	if err != nil {
		s.logger.Warn("UpsertOperatingHours: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.operatingHoursRepo.Upsert(ctx, hours)
	if err != nil {
		s.logger.Error("UpsertOperatingHours: repository error for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: UpsertOperatingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertOperatingHours: location=%s day=%d saved (active=%t)", locationID, dayOfWeek, saved.Active)
	return models.FromDomainOperatingHours(saved), nil
}
