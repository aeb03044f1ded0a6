// Package observability exposes the Prometheus collectors the service
// feeds. Collectors register on a dedicated registry rather than the
// package default, so /metrics serves only what this service owns.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rategrid", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	DistributionTargets = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "distribution_targets_total", Help: "Per-property distribution outcomes."},
		[]string{"outcome"}, // outcome: synced|failed|skipped
	)
	Distributions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "distributions_total", Help: "Distribution runs by overall status."},
		[]string{"overall"},
	)
	Reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "reservations_total", Help: "Reservation attempts."},
		[]string{"source", "outcome"}, // outcome: ok|rejected|error
	)
	QuoteResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "quote_results_total", Help: "Quote outcomes."},
		[]string{"result"}, // result: priced|<reject reason>
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rategrid", Name: "webhook_events_total", Help: "Inbound channel events."},
		[]string{"channel", "type", "outcome"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests,
		HTTPLatency,
		DistributionTargets,
		Distributions,
		Reservations,
		QuoteResults,
		CacheEvents,
		WebhookEvents,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveDistributionTarget(outcome string) {
	DistributionTargets.WithLabelValues(outcome).Inc()
}

func ObserveDistribution(overall string) {
	Distributions.WithLabelValues(overall).Inc()
}

func ObserveReservation(source, outcome string) {
	Reservations.WithLabelValues(source, outcome).Inc()
}

func ObserveQuote(result string) {
	QuoteResults.WithLabelValues(result).Inc()
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveWebhook(channel, eventType, outcome string) {
	WebhookEvents.WithLabelValues(channel, eventType, outcome).Inc()
}
