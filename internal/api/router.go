package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/middleware"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	GetAvailableSlots       http.HandlerFunc
	CreateAppointment       http.HandlerFunc
	ListAppointments        http.HandlerFunc
	GetAppointment          http.HandlerFunc
	UpdateAppointmentStatus http.HandlerFunc
	CancelAppointment       http.HandlerFunc
	RescheduleAppointment   http.HandlerFunc
	CountAppointments       http.HandlerFunc
	ListBlockedSlots        http.HandlerFunc
	CreateBlockedSlot       http.HandlerFunc
	DeleteBlockedSlot       http.HandlerFunc
	GetOperatingHours       http.HandlerFunc
	UpsertOperatingHours    http.HandlerFunc
	GetLocationConfig       http.HandlerFunc
	UpdateLocationConfig    http.HandlerFunc
}

// Options дополнительные обработчики и middleware
type Options struct {
	Metrics     middleware.HTTPMetrics // nil = метрики выключены
	MetricsPath string
	MetricsHTTP http.Handler // обработчик /metrics (promhttp)
	Logger      middleware.Logger
}

// NewRouter собирает роутер со всеми маршрутами
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.CorrelationID)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}
	r.Use(middleware.Tracing)

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsHTTP != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHTTP).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/locations/{locationId}/availability", h.GetAvailableSlots).Methods(http.MethodGet)

	// Запись клиента
	api.HandleFunc("/appointments", h.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", h.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", h.CancelAppointment).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", h.RescheduleAppointment).Methods(http.MethodPatch)

	// Календарь и настройки локации
	api.HandleFunc("/locations/{locationId}/operating-hours", h.GetOperatingHours).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/config", h.GetLocationConfig).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff-ID header)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.Staff(opts.Logger))

	// --- Записи ---
	staff.HandleFunc("/appointments", h.ListAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{appointmentId}/status", h.UpdateAppointmentStatus).Methods(http.MethodPatch)
	staff.HandleFunc("/locations/{locationId}/appointments/count", h.CountAppointments).Methods(http.MethodGet)

	// --- Блокировки ---
	staff.HandleFunc("/blocked-slots", h.ListBlockedSlots).Methods(http.MethodGet)
	staff.HandleFunc("/blocked-slots", h.CreateBlockedSlot).Methods(http.MethodPost)
	staff.HandleFunc("/blocked-slots/{blockedSlotId}", h.DeleteBlockedSlot).Methods(http.MethodDelete)

	// --- Часы работы и настройки ---
	staff.HandleFunc("/locations/{locationId}/operating-hours/{dayOfWeek}", h.UpsertOperatingHours).Methods(http.MethodPut)
	staff.HandleFunc("/locations/{locationId}/config", h.UpdateLocationConfig).Methods(http.MethodPut)

	return r
}
