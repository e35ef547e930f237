package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "cache_events_total", Help: "Cache events by key family."},
		[]string{"family", "event"}, // event: hit|miss|corrupt|set|del|error
	)
	BookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "booking_outcomes_total", Help: "Booking attempts by action and outcome."},
		[]string{"action", "outcome"}, // action: quote|create|cancel
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "events_published_total", Help: "Domain events handed to the broker."},
		[]string{"driver", "topic", "status"},
	)
)

// Serve exposes /metrics on a dedicated listener. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		BookingOutcomes, EventsPublished)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(family, event string) {
	CacheEvents.WithLabelValues(family, event).Inc()
}

func ObserveBooking(action string, err error) {
	BookingOutcomes.WithLabelValues(action, Outcome(err)).Inc()
}

func ObservePublish(driver, topic string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EventsPublished.WithLabelValues(driver, topic, status).Inc()
}

// Outcome buckets an error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, domain.ErrInvalidRoomCount):
		return "invalid_room_count"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCancellationClosed), errors.Is(err, domain.ErrInvalidTransition):
		return "rejected"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "error"
	}
}
