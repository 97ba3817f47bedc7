package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "priced",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "priced",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "priced",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
		[]string{"path"},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "priced",
			Subsystem: "model",
			Name:      "predictions_total",
			Help:      "Predictions by outcome (ok, invalid, error)",
		},
		[]string{"outcome"},
	)

	predictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "priced",
			Subsystem: "model",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of predictor calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	)

	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "priced",
			Subsystem: "model",
			Name:      "validation_failures_total",
			Help:      "Requests rejected by input validation, by field",
		},
		[]string{"field"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal, httpRequestDuration, httpInflight,
		predictionsTotal, predictionDuration, validationFailuresTotal,
	)
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := routePatternOrPath(r)
		method := r.Method
		httpInflight.WithLabelValues(path).Inc()
		defer httpInflight.WithLabelValues(path).Dec()

		sr := &statusRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sr, r)
		statusLabel := itoa(sr.status)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(path, method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, method, statusLabel).Observe(dur)
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// ObservePrediction records one predictor call with its outcome.
func ObservePrediction(outcome string, dur time.Duration) {
	predictionsTotal.WithLabelValues(outcome).Inc()
	predictionDuration.Observe(dur.Seconds())
}

// IncrementValidationFailure is called when a request is rejected with 400.
func IncrementValidationFailure(field string) {
	if field == "" {
		field = "unspecified"
	}
	validationFailuresTotal.WithLabelValues(field).Inc()
}

// fast integer to ascii for small set of status codes
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
