package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/FloatBookingService/internal/api"
	cancelAppointmentHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/cancel_appointment"
	countAppointmentsHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/count_appointments"
	createAppointmentHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/create_appointment"
	createBlockedSlotHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/create_blocked_slot"
	deleteBlockedSlotHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/delete_blocked_slot"
	getAppointmentHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/get_available_slots"
	getLocationConfigHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/get_location_config"
	getOperatingHoursHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/get_operating_hours"
	listAppointmentsHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/list_appointments"
	listBlockedSlotsHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/list_blocked_slots"
	rescheduleAppointmentHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/update_appointment_status"
	updateLocationConfigHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/update_location_config"
	upsertOperatingHoursHandler "github.com/m04kA/FloatBookingService/internal/api/handlers/upsert_operating_hours"
	"github.com/m04kA/FloatBookingService/internal/config"
	"github.com/m04kA/FloatBookingService/internal/infra/cache/idempotency"
	"github.com/m04kA/FloatBookingService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/FloatBookingService/internal/service/appointments"
	calendarService "github.com/m04kA/FloatBookingService/internal/service/calendar"
	configService "github.com/m04kA/FloatBookingService/internal/service/config"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
	createAppointmentUC "github.com/m04kA/FloatBookingService/internal/usecase/create_appointment"
	expireAppointmentsUC "github.com/m04kA/FloatBookingService/internal/usecase/expire_appointments"
	getAvailableSlotsUC "github.com/m04kA/FloatBookingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/FloatBookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/FloatBookingService/internal/worker/expiry"
	"github.com/m04kA/FloatBookingService/internal/worker/outbox"
	"github.com/m04kA/FloatBookingService/pkg/logger"
	"github.com/m04kA/FloatBookingService/pkg/metrics"
	"github.com/m04kA/FloatBookingService/pkg/tracing"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting FloatBookingService...")
	log.Info("Configuration loaded from %s (storage=%s)", *configPath, cfg.Storage.Driver)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Трассировка (если включена)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := openStorage(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Хранилище ключей идемпотентности (без Redis повтор запроса не распознается)
	var idempotencyStore createAppointmentUC.IdempotencyStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisStore := idempotency.NewStore(redisClient, time.Duration(cfg.Redis.IdempotencyTTLSec)*time.Second)
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn("Redis is unreachable at %s, idempotency keys may be ignored: %v", cfg.Redis.Addr, err)
		}
		idempotencyStore = redisStore
		log.Info("Idempotency store initialized (redis=%s)", cfg.Redis.Addr)
	}

	// Каталог услуг
	var catalog getAvailableSlotsUC.ServiceCatalog
	if cfg.CatalogService.URL != "" {
		catalog = catalogservice.NewClient(
			cfg.CatalogService.URL,
			time.Duration(cfg.CatalogService.Timeout)*time.Second,
			log,
		)
		log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)
	} else {
		catalog = catalogservice.NewStatic(cfg.CatalogService.StaticServices)
		log.Info("Using static service catalog (%d services)", len(cfg.CatalogService.StaticServices))
	}

	// Проверка вместимости
	checker := capacity.NewChecker(
		store.appointments,
		store.blockedSlots,
		store.operatingHours,
		store.schedulingConfig,
		store.tanks,
		location,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.appointments,
		store.blockedSlots,
		store.operatingHours,
		store.schedulingConfig,
		store.tanks,
		catalog,
		location,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		store.outbox,
		checker,
		idempotencyStore,
		store.txManager,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		store.appointments,
		store.outbox,
		checker,
		store.txManager,
		log,
	)
	expireAppointmentsUseCase := expireAppointmentsUC.NewUseCase(
		store.appointments,
		store.outbox,
		store.txManager,
		metricsCollector,
		cfg.Workers.ExpiryBatchSize,
		log,
	)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(store.appointments, store.outbox, store.txManager, location, log)
	calendarSvc := calendarService.NewService(store.blockedSlots, store.operatingHours, log)
	configSvc := configService.NewService(store.schedulingConfig, log)

	// Инициализируем handlers
	handlers := api.Handlers{
		GetAvailableSlots:       getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log).Handle,
		CreateAppointment:       createAppointmentHandler.NewHandler(createAppointmentUseCase, log).Handle,
		ListAppointments:        listAppointmentsHandler.NewHandler(appointmentsSvc, log).Handle,
		GetAppointment:          getAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		UpdateAppointmentStatus: updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log).Handle,
		CancelAppointment:       cancelAppointmentHandler.NewHandler(appointmentsSvc, log).Handle,
		RescheduleAppointment:   rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log).Handle,
		CountAppointments:       countAppointmentsHandler.NewHandler(appointmentsSvc, log).Handle,
		ListBlockedSlots:        listBlockedSlotsHandler.NewHandler(calendarSvc, location, log).Handle,
		CreateBlockedSlot:       createBlockedSlotHandler.NewHandler(calendarSvc, log).Handle,
		DeleteBlockedSlot:       deleteBlockedSlotHandler.NewHandler(calendarSvc, log).Handle,
		GetOperatingHours:       getOperatingHoursHandler.NewHandler(calendarSvc, log).Handle,
		UpsertOperatingHours:    upsertOperatingHoursHandler.NewHandler(calendarSvc, log).Handle,
		GetLocationConfig:       getLocationConfigHandler.NewHandler(configSvc, log).Handle,
		UpdateLocationConfig:    updateLocationConfigHandler.NewHandler(configSvc, log).Handle,
	}

	routerOpts := api.Options{Logger: log}
	if cfg.Metrics.Enabled {
		routerOpts.Metrics = metricsCollector
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHTTP = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := api.NewRouter(handlers, routerOpts)

	// Фоновые задачи
	var wg sync.WaitGroup

	expiryWorker := expiry.NewWorker(
		expireAppointmentsUseCase,
		time.Duration(cfg.Workers.ExpiryInterval)*time.Second,
		cfg.Workers.ExpiryBatchSize,
		log,
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		expiryWorker.Run(ctx)
	}()

	if cfg.Kafka.Enabled {
		publisher := outbox.NewPublisher(
			store.outbox,
			store.txManager,
			outbox.NewWriter(cfg.Kafka.Brokers),
			metricsCollector,
			outbox.Config{
				PollInterval: time.Duration(cfg.Workers.OutboxInterval) * time.Second,
				BatchSize:    cfg.Workers.OutboxBatchSize,
			},
			log,
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			publisher.Run(ctx)
		}()
		log.Info("Outbox publisher started (brokers=%s)", cfg.Kafka.Brokers)
	} else {
		log.Warn("Kafka disabled, outbox events stay unpublished")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed: %v", err)
			stop()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Background workers stopped")

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
