package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/FloatBookingService/internal/config"
	"github.com/m04kA/FloatBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/appointment"
	blockedSlotRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/blockedslot"
	"github.com/m04kA/FloatBookingService/internal/infra/storage/memory"
	hoursRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/operatinghours"
	outboxRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/outbox"
	configRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/schedulingconfig"
	tankRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/tank"
	"github.com/m04kA/FloatBookingService/pkg/dbmetrics"
	"github.com/m04kA/FloatBookingService/pkg/logger"
	"github.com/m04kA/FloatBookingService/pkg/metrics"
	"github.com/m04kA/FloatBookingService/pkg/txmanager"
)

type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindMany(ctx context.Context, filter domain.AppointmentFilter, page domain.Pagination) ([]*domain.Appointment, int, error)
	Update(ctx context.Context, a *domain.Appointment) error
	CountByDate(ctx context.Context, locationID *string, from, to time.Time) (int, error)
	ListActiveOverlapping(ctx context.Context, locationID string, from, to time.Time) ([]*domain.Appointment, error)
	ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]*domain.Appointment, error)
	LockLocation(ctx context.Context, locationID string) error
}

type blockedSlotStore interface {
	Create(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error)
	Delete(ctx context.Context, id string) error
	FindMany(ctx context.Context, filter domain.BlockedSlotFilter, page domain.Pagination) ([]*domain.BlockedSlot, int, error)
	ListForWindow(ctx context.Context, locationID string, from, to time.Time) ([]*domain.BlockedSlot, error)
}

type operatingHoursStore interface {
	Get(ctx context.Context, locationID string, dayOfWeek int) (*domain.OperatingHours, error)
	ListByLocation(ctx context.Context, locationID string) ([]*domain.OperatingHours, error)
	Upsert(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error)
}

type schedulingConfigStore interface {
	Get(ctx context.Context, locationID string) (*domain.LocationSchedulingConfig, error)
	Upsert(ctx context.Context, c *domain.LocationSchedulingConfig) (*domain.LocationSchedulingConfig, error)
}

type tankStore interface {
	CountBookable(ctx context.Context, locationID string) (int, error)
}

type outboxStore interface {
	Insert(ctx context.Context, e *domain.OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

type txRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	appointments     appointmentStore
	blockedSlots     blockedSlotStore
	operatingHours   operatingHoursStore
	schedulingConfig schedulingConfigStore
	tanks            tankStore
	outbox           outboxStore
	txManager        txRunner
	close            func()
}

func openStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return openMemoryStorage(cfg, log), nil
	}
	return openPostgresStorage(cfg, m, log)
}

func openMemoryStorage(cfg *config.Config, log *logger.Logger) *storage {
	store := memory.NewStore()
	for _, t := range cfg.Storage.Tanks {
		status := domain.TankStatus(t.Status)
		if status == "" {
			status = domain.TankReady
		}
		store.Tanks().Put(domain.Tank{
			ID:         t.ID,
			LocationID: t.LocationID,
			Name:       t.Name,
			Status:     status,
			Active:     true,
		})
	}
	log.Warn("Using in-memory storage, data will be lost on restart (tanks=%d)", len(cfg.Storage.Tanks))

	return &storage{
		appointments:     store.Appointments(),
		blockedSlots:     store.BlockedSlots(),
		operatingHours:   store.OperatingHours(),
		schedulingConfig: store.SchedulingConfigs(),
		tanks:            store.Tanks(),
		outbox:           store.Outbox(),
		txManager:        store.TxManager(),
		close:            func() {},
	}
}

func openPostgresStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	txOpts := []txmanager.Option{
		txmanager.WithMaxRetries(cfg.Database.TxMaxRetries),
		txmanager.WithMetrics(m),
	}

	if m == nil {
		return &storage{
			appointments:     appointmentRepo.NewRepository(db),
			blockedSlots:     blockedSlotRepo.NewRepository(db),
			operatingHours:   hoursRepo.NewRepository(db),
			schedulingConfig: configRepo.NewRepository(db),
			tanks:            tankRepo.NewRepository(db),
			outbox:           outboxRepo.NewRepository(db),
			txManager:        txmanager.NewFromSQL(db, txOpts...),
			close:            func() { _ = db.Close() },
		}, nil
	}

	// Оборачиваем БД для сбора метрик запросов и connection pool
	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)
	log.Info("Database metrics collection started")

	return &storage{
		appointments:     appointmentRepo.NewRepository(wrapped),
		blockedSlots:     blockedSlotRepo.NewRepository(wrapped),
		operatingHours:   hoursRepo.NewRepository(wrapped),
		schedulingConfig: configRepo.NewRepository(wrapped),
		tanks:            tankRepo.NewRepository(wrapped),
		outbox:           outboxRepo.NewRepository(wrapped),
		txManager:        txmanager.NewTransactionManager(wrapped, txOpts...),
		close: func() {
			close(stopCh)
			_ = db.Close()
		},
	}, nil
}
