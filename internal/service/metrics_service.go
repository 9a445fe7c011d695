package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Annotation outcomes recorded per submission.
const (
	AnnotationSaved   = "saved"
	AnnotationFailed  = "analysis_failed"
	AnnotationUnsaved = "save_failed"
	AnnotationSkipped = "skipped"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	externalDuration *prometheus.HistogramVec
	submissions      *prometheus.CounterVec
	annotations      *prometheus.CounterVec
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

	externalDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analysis_service_request_duration_seconds",
		Help:    "Duration of calls to the feedback analysis service",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
	}, []string{"operation", "outcome"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_submissions_total",
		Help: "Feedback reports stored, by category",
	}, []string{"category"})

	annotations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_annotations_total",
		Help: "Outcome of the best-effort AI annotation per submission",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, externalDuration, submissions, annotations, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		externalDuration: externalDuration,
		submissions:      submissions,
		annotations:      annotations,
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

// ObserveExternalCall records a call to the analysis service.
func (m *MetricsService) ObserveExternalCall(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.externalDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

// RecordSubmission counts a stored feedback report.
func (m *MetricsService) RecordSubmission(category string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(category).Inc()
}

// RecordAnnotation counts the annotation outcome of a submission.
func (m *MetricsService) RecordAnnotation(outcome string) {
	if m == nil {
		return
	}
	m.annotations.WithLabelValues(outcome).Inc()
}
