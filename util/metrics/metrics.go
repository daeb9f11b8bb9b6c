// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webbooks_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webbooks_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webbooks_db_query_duration_seconds",
			Help:    "Duration of PostgreSQL queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webbooks_db_query_errors_total",
			Help: "Total number of failed PostgreSQL queries",
		},
		[]string{"operation"},
	)

	LoanEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webbooks_loan_events_total",
			Help: "Copies lent and returned",
		},
		[]string{"event"}, // "lend", "return"
	)

	OverdueCopies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "webbooks_overdue_copies",
			Help: "Copies whose due_back date has passed, as of the last overdue check",
		},
	)
)

func RecordAPIRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveQuery(operation string, d time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

func RecordLoanEvent(event string) {
	LoanEvents.WithLabelValues(event).Inc()
}

func SetOverdueCopies(n int64) {
	OverdueCopies.Set(float64(n))
}
