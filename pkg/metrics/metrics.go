package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы коммита бронирования
const (
	BookingOutcomeCreated    = "created"
	BookingOutcomeConflict   = "conflict"
	BookingOutcomeInvalid    = "invalid"
	BookingOutcomeError      = "error"
	BookingOutcomeIdempotent = "idempotent"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	BookingCommits      *prometheus.CounterVec
	TxRetries           *prometheus.CounterVec
	OutboxPublished     *prometheus.CounterVec
	ExpiredAppointments *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в reg
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		BookingCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_commits_total",
			Help:        "Booking commit attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		TxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tx_serialization_retries_total",
			Help:        "Transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}, []string{"isolation"}),
		OutboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_events_published_total",
			Help:        "Outbox events handed to the broker",
			ConstLabels: constLabels,
		}, []string{"event_type", "outcome"}),
		ExpiredAppointments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_expired_total",
			Help:        "Pending appointments cancelled by the expiry worker",
			ConstLabels: constLabels,
		}, []string{}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.BookingCommits,
		m.TxRetries,
		m.OutboxPublished,
		m.ExpiredAppointments,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) RecordBookingCommit(outcome string) {
	if m == nil {
		return
	}
	m.BookingCommits.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.TxRetries.WithLabelValues(isolation).Inc()
}

func (m *Metrics) RecordOutboxPublished(eventType string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.OutboxPublished.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) RecordExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ExpiredAppointments.WithLabelValues().Add(float64(n))
}
