package qmeasure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

/*
Metrics collects Prometheus instrumentation for devices and pools. A nil
*Metrics is valid and records nothing, so devices built without WithMetrics
pay no cost.

Metrics:
  - qmeasure_executions_total{status} - executions by "success" or "failure"
  - qmeasure_execution_duration_seconds - latency of Execute
  - qmeasure_samples_drawn_total - computational basis samples drawn
  - qmeasure_observables_total{return_type} - statistics computed
  - qmeasure_pool_queue_depth - jobs waiting in a pool
  - qmeasure_pool_workers - workers currently running
  - qmeasure_pool_throttled_total - jobs refused by a regulator
*/
type Metrics struct {
	Executions        *prometheus.CounterVec
	ExecutionDuration prometheus.Histogram
	SamplesDrawn      prometheus.Counter
	Observables       *prometheus.CounterVec
	QueueDepth        prometheus.Gauge
	Workers           prometheus.Gauge
	Throttled         prometheus.Counter
}

// NewMetrics registers the collectors on reg; a nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Executions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qmeasure_executions_total",
				Help: "Total number of circuit executions",
			},
			[]string{"status"},
		),
		ExecutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qmeasure_execution_duration_seconds",
				Help:    "Duration of circuit executions in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		SamplesDrawn: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "qmeasure_samples_drawn_total",
				Help: "Total number of computational basis samples drawn",
			},
		),
		Observables: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qmeasure_observables_total",
				Help: "Total number of statistics computed by return type",
			},
			[]string{"return_type"},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "qmeasure_pool_queue_depth",
				Help: "Number of jobs waiting in the execution pool",
			},
		),
		Workers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "qmeasure_pool_workers",
				Help: "Number of running pool workers",
			},
		),
		Throttled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "qmeasure_pool_throttled_total",
				Help: "Total number of jobs refused by a pool regulator",
			},
		),
	}
}

func (m *Metrics) recordExecution(startTime time.Time, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	m.Executions.WithLabelValues(status).Inc()
	m.ExecutionDuration.Observe(time.Since(startTime).Seconds())
}

func (m *Metrics) recordSamples(n int) {
	if m == nil {
		return
	}
	m.SamplesDrawn.Add(float64(n))
}

func (m *Metrics) recordObservable(rt ReturnType) {
	if m == nil {
		return
	}
	m.Observables.WithLabelValues(rt.String()).Inc()
}

func (m *Metrics) addQueued(delta float64) {
	if m == nil {
		return
	}
	m.QueueDepth.Add(delta)
}

func (m *Metrics) addWorkers(delta float64) {
	if m == nil {
		return
	}
	m.Workers.Add(delta)
}

func (m *Metrics) recordThrottled() {
	if m == nil {
		return
	}
	m.Throttled.Inc()
}
