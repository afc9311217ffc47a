package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueriesTotal      *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
	DBConnectionsOpen   prometheus.Gauge
	DBConnectionsInUse  prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	PaymentEventsTotal  *prometheus.CounterVec
	BookingsCreated     prometheus.Counter
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of established connections to the database",
			ConstLabels: constLabels,
		}),

		DBConnectionsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}),

		DBConnectionsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		DBWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count_total",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		PaymentEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_events_total",
			Help:        "Total number of processed payment provider events",
			ConstLabels: constLabels,
		}, []string{"type", "result"}),

		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: constLabels,
		}),
	}
}

// IncPaymentEvent увеличивает счётчик платёжных событий
func (m *Metrics) IncPaymentEvent(eventType, result string) {
	m.PaymentEventsTotal.WithLabelValues(eventType, result).Inc()
}

// IncBookingCreated увеличивает счётчик созданных бронирований
func (m *Metrics) IncBookingCreated() {
	m.BookingsCreated.Inc()
}

// RecordDBStats переносит статистику пула соединений в gauge-метрики
func (m *Metrics) RecordDBStats(stats sql.DBStats) {
	m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
	m.DBConnectionsInUse.Set(float64(stats.InUse))
	m.DBConnectionsIdle.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}
