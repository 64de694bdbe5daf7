package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the booking
// engine.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	bookingsCreated  *prometheus.CounterVec
	slotConflicts    prometheus.Counter
	remindersSent    prometheus.Counter
	bookingsSwept    prometheus.Counter
	sweepsTotal      prometheus.Counter
	sweepDuration    prometheus.Observer
	cacheLatency     prometheus.Observer
	cacheWriteTiming prometheus.Observer
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	bookingsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings admitted, labelled by submission source",
	}, []string{"source"})

	slotConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_conflicts_total",
		Help: "Booking attempts rejected because the slot was taken",
	})

	remindersSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_reminders_sent_total",
		Help: "Reminder notifications dispatched",
	})

	bookingsSwept := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_completed_total",
		Help: "Approved bookings auto-completed by the sweeper",
	})

	sweepsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_sweeps_total",
		Help: "Sweeper passes executed",
	})

	sweepDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "booking_sweep_duration_seconds",
		Help:    "Duration of sweeper passes",
		Buckets: prometheus.DefBuckets,
	})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, bookingsCreated, slotConflicts,
		remindersSent, bookingsSwept, sweepsTotal, sweepDuration,
		cacheLatency, cacheWrite, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		bookingsCreated:  bookingsCreated,
		slotConflicts:    slotConflicts,
		remindersSent:    remindersSent,
		bookingsSwept:    bookingsSwept,
		sweepsTotal:      sweepsTotal,
		sweepDuration:    sweepDuration,
		cacheLatency:     cacheLatency,
		cacheWriteTiming: cacheWrite,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordBookingCreated counts an admitted booking by its submission source
// ("online" or "manual").
func (m *MetricsService) RecordBookingCreated(source string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(source).Inc()
}

// RecordSlotConflict counts a booking attempt that lost the slot race.
func (m *MetricsService) RecordSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

// RecordReminderSent counts a dispatched reminder.
func (m *MetricsService) RecordReminderSent() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}

// RecordSweep records one sweeper pass and how many bookings it completed.
func (m *MetricsService) RecordSweep(completed int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.sweepsTotal.Inc()
	m.sweepDuration.Observe(duration.Seconds())
	m.bookingsSwept.Add(float64(completed))
}

// RecordCacheOperation records cache hit/miss metrics.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWriteTiming.Observe(duration.Seconds())
}
