package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics owns the API server's prometheus registry: request
// traffic plus the analysis-pipeline counters (inference tiers, document
// chunking, workflow stages, summarization).
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	tierAttemptsTotal   *prometheus.CounterVec
	documentChunks      *prometheus.HistogramVec
	documentsTotal      *prometheus.CounterVec
	workflowStagesTotal *prometheus.CounterVec
	summariesTotal      *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clauseguard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clauseguard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "clauseguard",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	tierAttemptsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clauseguard",
			Subsystem: "inference",
			Name:      "tier_attempts_total",
			Help:      "Classification attempts per fallback tier by outcome.",
		},
		[]string{"service", "tier", "outcome"},
	)
	documentChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clauseguard",
			Subsystem: "analysis",
			Name:      "document_chunks",
			Help:      "Distribution of chunks per analyzed document.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
		[]string{"service"},
	)
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clauseguard",
			Subsystem: "analysis",
			Name:      "documents_total",
			Help:      "Total document analyses by status.",
		},
		[]string{"service", "status"},
	)
	workflowStagesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clauseguard",
			Subsystem: "workflow",
			Name:      "stages_total",
			Help:      "Legal workflow stage executions by outcome.",
		},
		[]string{"service", "stage", "outcome"},
	)
	summariesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clauseguard",
			Subsystem: "summary",
			Name:      "requests_total",
			Help:      "Summarization attempts by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		tierAttemptsTotal,
		documentChunks,
		documentsTotal,
		workflowStagesTotal,
		summariesTotal,
	)

	return &HTTPServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		tierAttemptsTotal:   tierAttemptsTotal,
		documentChunks:      documentChunks,
		documentsTotal:      documentsTotal,
		workflowStagesTotal: workflowStagesTotal,
		summariesTotal:      summariesTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// ServiceMetrics binds a service name to the registry so the usecase layer
// can record observations without carrying the label around.
type ServiceMetrics struct {
	service string
	inner   *HTTPServerMetrics
}

func (m *HTTPServerMetrics) ForService(service string) *ServiceMetrics {
	return &ServiceMetrics{service: service, inner: m}
}

func (s *ServiceMetrics) RecordTierAttempt(tier, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	s.inner.tierAttemptsTotal.WithLabelValues(s.service, tier, outcome).Inc()
}

func (s *ServiceMetrics) RecordWorkflowStage(stage, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	s.inner.workflowStagesTotal.WithLabelValues(s.service, stage, outcome).Inc()
}

func (s *ServiceMetrics) RecordDocumentAnalysis(chunkCount int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.inner.documentsTotal.WithLabelValues(s.service, status).Inc()
	if err == nil {
		s.inner.documentChunks.WithLabelValues(s.service).Observe(float64(chunkCount))
	}
}

func (s *ServiceMetrics) RecordSummary(available bool) {
	outcome := "available"
	if !available {
		outcome = "unavailable"
	}
	s.inner.summariesTotal.WithLabelValues(s.service, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
