package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "homecard", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homecard", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "homecard", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homecard", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "homecard", Name: "cache_events_total", Help: "Cache hits/misses/sets/incrs."},
		[]string{"cache", "event"}, // event: hit|miss|set|incr
	)
	CardBuilds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homecard", Name: "card_build_duration_seconds",
			Help:    "Property card build duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"}, // ok|error
	)
	CardPartFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "homecard", Name: "card_part_failures_total", Help: "Failed card sub-fetches."},
		[]string{"part"},
	)
	PriceResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "homecard", Name: "price_resolutions_total", Help: "Resolved prices by viewer kind."},
		[]string{"viewer", "outcome"},
	)
)

// Serve starts a standalone metrics listener on addr; empty addr disables it.
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
		CardBuilds, CardPartFailures, PriceResolutions)
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

func ObserveCache(cache, event string) { // event: hit|miss|set|incr
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveCardBuild(err error, dur time.Duration) {
	CardBuilds.WithLabelValues(outcome(err)).Observe(dur.Seconds())
}

func ObserveCardPartFailure(part string) {
	CardPartFailures.WithLabelValues(part).Inc()
}

func ObservePrice(viewer string, err error) {
	PriceResolutions.WithLabelValues(viewer, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
