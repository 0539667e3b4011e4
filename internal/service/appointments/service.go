package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями (операции персонала и клиента)
type Service struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		location:        location,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает страницу записей с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments page=%d, limit=%d", req.Page, req.Limit)

	page, err := domain.NewPagination(req.Page, req.Limit)
	if err != nil {
		s.logger.Warn("List: invalid pagination: %v", err)
		return nil, err
	}

	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	list, total, err := s.appointmentRepo.FindMany(ctx, filter, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d appointments", len(list), total)
	return models.FromDomainPage(domain.NewPage(list, total, page)), nil
}

// UpdateStatus переводит запись в новый статус по таблице переходов
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s by staff=%s", id, req.Status, req.StaffID)

	target, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%s", req.Status, id)
		return nil, err
	}

	updated, err := s.transition(ctx, "UpdateStatus", id, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// Cancel отменяет активную запись
func (s *Service) Cancel(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	updated, err := s.transition(ctx, "Cancel", id, domain.StatusCancelled)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: %v", ErrCannotCancel, err)
		}
		return nil, err
	}

	s.logger.Info("Cancel: appointment id=%s cancelled", id)
	return models.FromDomainAppointment(updated), nil
}

// CountByDate считает записи с началом в указанную дату
// Учитываются записи во всех статусах
func (s *Service) CountByDate(ctx context.Context, locationID *string, date time.Time) (*models.CountResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 0, 1)

	count, err := s.appointmentRepo.CountByDate(ctx, locationID, from, to)
	if err != nil {
		s.logger.Error("CountByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CountByDate - repository error: %v", ErrInternal, err)
	}

	return &models.CountResponse{
		LocationID: locationID,
		Date:       from.Format(domain.DateFormat),
		Count:      count,
	}, nil
}

func (s *Service) transition(ctx context.Context, op, id string, target domain.AppointmentStatus) (*domain.Appointment, error) {
	now := s.timeProvider.Now()

	var updated *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.appointmentRepo.FindByID(txCtx, id)
		if err != nil {
			return s.mapRepoError(op, id, err)
		}

		next, err := current.Transition(target, now)
		if err != nil {
			s.logger.Warn("%s: appointment id=%s: %v", op, id, err)
			return err
		}

		if err := s.appointmentRepo.Update(txCtx, next); err != nil {
			return s.mapRepoError(op, id, err)
		}

		event, err := domain.NewAppointmentEvent(domain.EventAppointmentStatusChanged, next, current.Status, now)
		if err != nil {
			return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
		}
		if err := s.outboxRepo.Insert(txCtx, event); err != nil {
			s.logger.Error("%s: failed to write outbox event: %v", op, err)
			return fmt.Errorf("%w: %s - outbox insert: %v", ErrInternal, op, err)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%s not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) toDomainFilter(req *models.ListAppointmentsRequest) (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		ClientID:   req.ClientID,
		LocationID: req.LocationID,
	}

	if req.Status != nil {
		status, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if req.StartDate != nil {
		from := time.Date(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(), 0, 0, 0, 0, s.location)
		filter.StartDate = &from
	}
	if req.EndDate != nil {
		to := time.Date(req.EndDate.Year(), req.EndDate.Month(), req.EndDate.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, 1)
		filter.EndDate = &to
	}
	if filter.StartDate != nil && filter.EndDate != nil && !filter.EndDate.After(*filter.StartDate) {
		return filter, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	return filter, nil
}
