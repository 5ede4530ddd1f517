package telemetry

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/wolfeidau/stockroom"

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	RequestsTotal   metric.Int64Counter
	RequestDuration metric.Float64Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.RequestsTotal, _ = meter.Int64Counter(
		"stockroom.http.requests.total",
		metric.WithDescription("Total number of HTTP requests handled"),
		metric.WithUnit("{request}"),
	)

	m.RequestDuration, _ = meter.Float64Histogram(
		"stockroom.http.request.duration",
		metric.WithDescription("Duration of HTTP request handling"),
		metric.WithUnit("ms"),
	)

	return m
}

// Middleware records request count and duration for every request, tagged
// with method and response status.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			attrs := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.status_code", strconv.Itoa(rec.status)),
			)

			m.RequestsTotal.Add(r.Context(), 1, attrs)
			m.RequestDuration.Record(r.Context(), float64(time.Since(start).Milliseconds()), attrs)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
