package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// View-model metrics
	StructuralChanges *prometheus.CounterVec
	DataChanges       *prometheus.CounterVec
	LauncherItems     prometheus.Gauge
	ResultsBuilt      *prometheus.CounterVec

	// WebSocket metrics
	WSClients prometheus.Gauge
	WSDropped prometheus.Counter

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shell_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		StructuralChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_model_structural_changes_total",
				Help: "Completed structural changes by model and kind",
			},
			[]string{"model", "kind"},
		),
		DataChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_model_data_changes_total",
				Help: "Data-changed notifications by model",
			},
			[]string{"model"},
		),
		LauncherItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_launcher_items",
				Help: "Number of launcher entries",
			},
		),
		ResultsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_results_models_built_total",
				Help: "Results collections built by the category cache",
			},
			[]string{"category"},
		),

		WSClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_ws_clients",
				Help: "Connected WebSocket clients",
			},
		),
		WSDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_ws_frames_dropped_total",
				Help: "Frames dropped for slow WebSocket clients",
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "shell_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordStructuralChange counts a completed insert, remove, move or reset.
func (m *Metrics) RecordStructuralChange(model, kind string) {
	if m == nil {
		return
	}
	m.StructuralChanges.WithLabelValues(model, kind).Inc()
}

// RecordDataChange counts a data-changed notification.
func (m *Metrics) RecordDataChange(model string) {
	if m == nil {
		return
	}
	m.DataChanges.WithLabelValues(model).Inc()
}

// SetLauncherItems sets the launcher size gauge.
func (m *Metrics) SetLauncherItems(n int) {
	if m == nil {
		return
	}
	m.LauncherItems.Set(float64(n))
}

// RecordResultsBuilt counts a results collection built for category.
func (m *Metrics) RecordResultsBuilt(category string) {
	if m == nil {
		return
	}
	m.ResultsBuilt.WithLabelValues(category).Inc()
}

// IncWSClients increments connected WebSocket clients.
func (m *Metrics) IncWSClients() {
	if m == nil {
		return
	}
	m.WSClients.Inc()
}

// DecWSClients decrements connected WebSocket clients.
func (m *Metrics) DecWSClients() {
	if m == nil {
		return
	}
	m.WSClients.Dec()
}

// RecordWSDrop counts a frame dropped for a slow client.
func (m *Metrics) RecordWSDrop() {
	if m == nil {
		return
	}
	m.WSDropped.Inc()
}
