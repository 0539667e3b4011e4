package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/infra/cache/idempotency"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
	"github.com/m04kA/FloatBookingService/pkg/metrics"
	"github.com/m04kA/FloatBookingService/pkg/txmanager"
)

var tracer = otel.Tracer("floatbooking/usecase/create_appointment")

// UseCase use case для создания записи (коммит бронирования)
type UseCase struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	checker         CapacityChecker
	idempotency     IdempotencyStore
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// idempotencyStore может быть nil: тогда заголовок Idempotency-Key игнорируется
func NewUseCase(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	checker CapacityChecker,
	idempotencyStore IdempotencyStore,
	txManager TransactionManager,
	m Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		checker:         checker,
		idempotency:     idempotencyStore,
		txManager:       txManager,
		metrics:         m,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
// под advisory-блокировкой локации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "CreateAppointment")
	defer span.End()

	uc.logger.Info("CreateAppointment: client=%s, service=%s, location=%s, window=%s..%s",
		req.ClientID, req.ServiceID, req.LocationID, req.StartTime.Format("2006-01-02T15:04Z07:00"), req.EndTime.Format("15:04Z07:00"))

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		uc.recordOutcome(outcomeOf(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("appointment.id", resp.Appointment.ID),
		attribute.Bool("appointment.replayed", resp.Replayed),
	)
	if resp.Replayed {
		uc.recordOutcome(metrics.BookingOutcomeIdempotent)
	} else {
		uc.recordOutcome(metrics.BookingOutcomeCreated)
	}
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных (до любого I/O)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	appointment, err := domain.NewAppointment(domain.NewAppointmentParams{
		ClientID:   req.ClientID,
		ServiceID:  req.ServiceID,
		LocationID: &req.LocationID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Notes:      req.Notes,
		Now:        now,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Резервируем Idempotency-Key до транзакции: параллельный запрос с тем же ключом не создаст вторую запись
	reserved, replay, err := uc.reserve(ctx, req)
	if err != nil || replay != nil {
		return replay, err
	}

	// 3. Проверка и вставка в сериализуемой транзакции
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, err := uc.checker.Check(txCtx, capacity.Request{
			LocationID: req.LocationID,
			Start:      appointment.StartTime,
			End:        appointment.EndTime,
			Now:        now,
		})
		if err != nil {
			return err
		}

		uc.logger.Info("CreateAppointment: window available, %d/%d tanks taken", result.Occupied, result.Capacity)

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		event, err := domain.NewAppointmentEvent(domain.EventAppointmentCreated, created, "", now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if reserved {
			uc.release(ctx, req)
		}
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", created.ID)

	// 4. Запоминаем результат для повторов
	if reserved {
		uc.remember(ctx, req, created)
	}

	return &Response{Appointment: created}, nil
}

// reserve занимает Idempotency-Key
// reserved = false без ошибки и без replay: ключ не передан или Redis недоступен
func (uc *UseCase) reserve(ctx context.Context, req *Request) (bool, *Response, error) {
	if uc.idempotency == nil || req.IdempotencyKey == "" {
		return false, nil, nil
	}

	ok, err := uc.idempotency.Reserve(ctx, req.IdempotencyKey, fingerprint(req))
	if err != nil {
		uc.logger.Warn("CreateAppointment: idempotency store unavailable, continuing without it: %v", err)
		return false, nil, nil
	}
	if ok {
		return true, nil, nil
	}

	replay, err := uc.replay(ctx, req)
	return false, replay, err
}

// replay возвращает ранее созданную запись для занятого Idempotency-Key
func (uc *UseCase) replay(ctx context.Context, req *Request) (*Response, error) {
	record, err := uc.idempotency.Get(ctx, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, idempotency.ErrNotFound) {
			// резерв истек или снят между Reserve и Get
			uc.logger.Warn("CreateAppointment: idempotency key %q released concurrently", req.IdempotencyKey)
			return nil, ErrIdempotencyRequestInProgress
		}
		uc.logger.Error("CreateAppointment: failed to read idempotency key %q: %v", req.IdempotencyKey, err)
		return nil, fmt.Errorf("%w: failed to read idempotency key: %v", ErrInternal, err)
	}

	if record.Fingerprint != fingerprint(req) {
		uc.logger.Warn("CreateAppointment: idempotency key %q reused with a different request", req.IdempotencyKey)
		return nil, ErrIdempotencyKeyReused
	}

	if record.Pending {
		uc.logger.Warn("CreateAppointment: idempotency key %q is still in progress", req.IdempotencyKey)
		return nil, ErrIdempotencyRequestInProgress
	}

	existing, err := uc.appointmentRepo.FindByID(ctx, record.AppointmentID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load appointment id=%s for idempotency key: %v", record.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to load replayed appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: replaying appointment id=%s for idempotency key", existing.ID)
	return &Response{Appointment: existing, Replayed: true}, nil
}

func (uc *UseCase) remember(ctx context.Context, req *Request, created *domain.Appointment) {
	err := uc.idempotency.Complete(context.WithoutCancel(ctx), req.IdempotencyKey, idempotency.Record{
		AppointmentID: created.ID,
		Fingerprint:   fingerprint(req),
		CreatedAt:     created.CreatedAt,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to store idempotency key: %v", err)
	}
}

// release снимает резерв, чтобы клиент мог повторить запрос с тем же ключом
func (uc *UseCase) release(ctx context.Context, req *Request) {
	if err := uc.idempotency.Release(context.WithoutCancel(ctx), req.IdempotencyKey, fingerprint(req)); err != nil {
		uc.logger.Warn("CreateAppointment: failed to release idempotency key %q: %v", req.IdempotencyKey, err)
	}
}

func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, capacity.ErrSlotNotAvailable):
		uc.logger.Warn("CreateAppointment: %v", err)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateAppointment: serialization retries exhausted: %v", err)
		return fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
	case errors.Is(err, domain.ErrValidation):
		uc.logger.Warn("CreateAppointment: window rejected: %v", err)
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		uc.logger.Warn("CreateAppointment: aborted: %v", err)
		return err
	}

	uc.logger.Error("CreateAppointment: transaction failed: %v", err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func (uc *UseCase) recordOutcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordBookingCommit(outcome)
	}
}
