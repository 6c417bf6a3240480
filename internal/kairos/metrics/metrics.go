package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultMatch = "match"
	ResultMiss  = "no_match"
)

// Metrics provides observability for the date formatting service.
type Metrics struct {
	// Parse outcomes by formatter kind
	ParseTotal *prometheus.CounterVec

	// Format calls by formatter kind
	FormatTotal *prometheus.CounterVec

	// Detection outcomes, match or no_match
	DetectTotal *prometheus.CounterVec

	// Detection results served from the cache
	DetectCacheHits prometheus.Counter

	// Formatters held by the registry
	RegistryFormatters prometheus.Gauge

	// Latency of a single request by operation
	RequestLatency *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg. A nil reg uses the
// process-wide default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ParseTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kairos_parse_total",
			Help: "Total parse calls by formatter kind and result",
		}, []string{"kind", "result"}),

		FormatTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kairos_format_total",
			Help: "Total format calls by formatter kind",
		}, []string{"kind"}),

		DetectTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kairos_detect_total",
			Help: "Total dynamic date detections by result",
		}, []string{"result"}),

		DetectCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "kairos_detect_cache_hits_total",
			Help: "Detections answered from the detection cache",
		}),

		RegistryFormatters: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kairos_registry_formatters",
			Help: "Number of formatters cached by the registry",
		}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kairos_request_duration_seconds",
			Help:    "Duration of service operations",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}, []string{"operation"}),
	}
}

// IncrementParse records a parse outcome.
func (m *Metrics) IncrementParse(kind string, err error) {
	if m != nil {
		m.ParseTotal.WithLabelValues(kind, result(err)).Inc()
	}
}

// IncrementFormat records a format call.
func (m *Metrics) IncrementFormat(kind string) {
	if m != nil {
		m.FormatTotal.WithLabelValues(kind).Inc()
	}
}

// IncrementDetect records a detection outcome.
func (m *Metrics) IncrementDetect(matched, cached bool) {
	if m == nil {
		return
	}
	if matched {
		m.DetectTotal.WithLabelValues(ResultMatch).Inc()
	} else {
		m.DetectTotal.WithLabelValues(ResultMiss).Inc()
	}
	if cached {
		m.DetectCacheHits.Inc()
	}
}

// SetRegistryFormatters records the registry size.
func (m *Metrics) SetRegistryFormatters(n int) {
	if m != nil {
		m.RegistryFormatters.Set(float64(n))
	}
}

// ObserveLatency records the duration of an operation.
func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
