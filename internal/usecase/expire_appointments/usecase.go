package expire_appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// DefaultBatchSize количество записей, обрабатываемых за один запуск
const DefaultBatchSize = 100

// UseCase отменяет неподтвержденные записи, время которых уже прошло
type UseCase struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	metrics         Metrics
	batchSize       int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	m Metrics,
	batchSize int,
	logger Logger,
) *UseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		metrics:         m,
		batchSize:       batchSize,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет одну пачку просроченных pending-записей
// Возвращает количество отмененных записей
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	expired := 0

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		list, err := uc.appointmentRepo.ListExpiredPending(txCtx, now, uc.batchSize)
		if err != nil {
			return fmt.Errorf("%w: failed to list expired appointments: %v", ErrInternal, err)
		}

		for _, a := range list {
			cancelled, err := a.Transition(domain.StatusCancelled, now)
			if err != nil {
				// Статус поменялся между выборкой и обработкой
				uc.logger.Warn("ExpireAppointments: skip appointment id=%s: %v", a.ID, err)
				continue
			}

			if err := uc.appointmentRepo.Update(txCtx, cancelled); err != nil {
				return fmt.Errorf("%w: failed to cancel appointment id=%s: %v", ErrInternal, a.ID, err)
			}

			event, err := domain.NewAppointmentEvent(domain.EventAppointmentStatusChanged, cancelled, a.Status, now)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
				return fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ExpireAppointments: %v", err)
		return 0, err
	}

	if expired > 0 {
		uc.logger.Info("ExpireAppointments: cancelled %d expired pending appointments", expired)
		if uc.metrics != nil {
			uc.metrics.RecordExpired(expired)
		}
	}
	return expired, nil
}
