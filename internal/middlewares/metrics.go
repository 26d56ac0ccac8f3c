package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the NEO engine server.
var Metrics = struct {
	RequestDuration      *prometheus.HistogramVec
	RequestsInFlight     prometheus.Gauge
	FeedAssembleDuration prometheus.Histogram
	RemixEdgesTotal      prometheus.Counter
	LikeTogglesTotal     prometheus.Counter
}{}

// RegisterMetrics registers all Prometheus metrics. Call once at startup.
func RegisterMetrics() {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neo_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "neo_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.FeedAssembleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "neo_feed_assemble_duration_seconds",
			Help:    "Duration of feed ranking and assembly.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.RemixEdgesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "neo_remix_edges_total",
			Help: "Total lineage edges successfully created.",
		},
	)

	Metrics.LikeTogglesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "neo_like_toggles_total",
			Help: "Total like toggle operations.",
		},
	)

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.FeedAssembleDuration,
		Metrics.RemixEdgesTotal,
		Metrics.LikeTogglesTotal,
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// InstrumentRequests records request duration and in-flight count.
func (mh *MiddlewareHandler) InstrumentRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		endpoint := sanitizeEndpoint(r.URL.Path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start).Seconds()
		Metrics.RequestDuration.
			WithLabelValues(endpoint, r.Method, strconv.Itoa(rec.status)).
			Observe(duration)
		Metrics.RequestsInFlight.Dec()
	})
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/videos/"):
		return "/api/v1/videos/:id"
	case strings.HasPrefix(path, "/api/v1/users/"):
		return "/api/v1/users/:id"
	default:
		return path
	}
}
