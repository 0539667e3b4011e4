package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/FloatBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
	"github.com/m04kA/FloatBookingService/pkg/txmanager"
)

var tracer = otel.Tracer("floatbooking/usecase/reschedule_appointment")

// UseCase use case для переноса записи на другое окно
type UseCase struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	checker         CapacityChecker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	checker CapacityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		checker:         checker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит активную запись
// Новое окно проверяется так же, как при создании, без учета самой записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "RescheduleAppointment")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", req.AppointmentID))

	uc.logger.Info("RescheduleAppointment: id=%s, window=%s..%s",
		req.AppointmentID, req.StartTime.Format("2006-01-02T15:04Z07:00"), req.EndTime.Format("15:04Z07:00"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.FindByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		moved, err := current.Reschedule(req.StartTime, req.EndTime, now)
		if err != nil {
			return err
		}
		if moved.LocationID == nil {
			return ErrNoLocation
		}

		check, err := uc.checker.Check(txCtx, capacity.Request{
			LocationID:           *moved.LocationID,
			Start:                moved.StartTime,
			End:                  moved.EndTime,
			ExcludeAppointmentID: moved.ID,
			Now:                  now,
		})
		if err != nil {
			return err
		}
		uc.logger.Info("RescheduleAppointment: window available, %d/%d tanks taken", check.Occupied, check.Capacity)

		if err := uc.appointmentRepo.Update(txCtx, moved); err != nil {
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		event, err := domain.NewAppointmentEvent(domain.EventAppointmentRescheduled, moved, current.Status, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
		}

		result = moved
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%s moved", result.ID)
	return &Response{Appointment: result}, nil
}

func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("RescheduleAppointment: serialization retries exhausted: %v", err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("RescheduleAppointment: %v", err)
		return err
	}

	uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
