package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OtherRoute labels every request outside the known routes
const OtherRoute = "other"

// RouteFunc maps a request to one of a fixed set of route labels. It must
// never return a value derived from client input.
type RouteFunc func(r *http.Request) string

var (
	// HTTP metrics, labelled by route rather than raw path
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route",
		},
		[]string{"method", "route", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Inquiry bodies are a few hundred bytes; anything near 64KiB is rejected
	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request body size in bytes by route",
			Buckets: prometheus.ExponentialBuckets(128, 4, 6),
		},
		[]string{"route"},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_active",
		Help: "Number of in-use database connections, sampled on health checks",
	})

	dbConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Number of idle database connections, sampled on health checks",
	})

	dbQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Inquiry metrics
	inquirySubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Total number of inquiry form submissions by outcome",
		},
		[]string{"result"}, // accepted, invalid, storage_failed
	)

	inquiryNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_notifications_total",
			Help: "Total number of inquiry notifications relayed",
		},
		[]string{"provider", "status"}, // status: success, failure
	)
)

// HTTPMiddleware records request count, latency and body size per route.
// A nil route func labels everything OtherRoute.
func HTTPMiddleware(route RouteFunc) func(http.Handler) http.Handler {
	if route == nil {
		route = func(*http.Request) string { return OtherRoute }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			label := route(r)

			if r.ContentLength > 0 {
				httpRequestSize.WithLabelValues(label).Observe(float64(r.ContentLength))
			}

			rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rec, r)

			httpRequestsTotal.WithLabelValues(r.Method, label, strconv.Itoa(rec.code)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.code = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecordSubmission records the outcome of an inquiry submission
func RecordSubmission(result string) {
	inquirySubmissionsTotal.WithLabelValues(result).Inc()
}

// RecordNotification records a relay attempt for a stored inquiry
func RecordNotification(provider string, err error) {
	inquiryNotificationsTotal.WithLabelValues(provider, outcome(err, "success", "failure")).Inc()
}

// RecordDBQuery records a database query
func RecordDBQuery(operation string, duration time.Duration, err error) {
	dbQueriesTotal.WithLabelValues(operation, outcome(err, "success", "error")).Inc()
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnections updates database connection metrics
func UpdateDBConnections(active, idle int) {
	dbConnectionsActive.Set(float64(active))
	dbConnectionsIdle.Set(float64(idle))
}

func outcome(err error, ok, failed string) string {
	if err != nil {
		return failed
	}
	return ok
}
