package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation results.
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

// Plan results.
const (
	PlanApplied = "applied"
	PlanMissing = "missing"
	PlanFailed  = "failed"
)

// Registry holds the volplan metrics.
var Registry = prometheus.NewRegistry()

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volplan",
			Name:      "operations_total",
			Help:      "Total number of storage operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	plansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "volplan",
			Name:      "plans_total",
			Help:      "Total number of requested volume plans by result",
		},
		[]string{"result"},
	)

	applyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "volplan",
			Name:      "apply_duration_seconds",
			Help:      "Duration of a volplan run in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3min
		},
	)
)

func init() {
	Registry.MustRegister(
		operationsTotal,
		plansTotal,
		applyDuration,
	)
}

// RecordOperation counts one storage operation.
func RecordOperation(operation, result string) {
	operationsTotal.WithLabelValues(operation, result).Inc()
}

func recordPlan(result string) {
	plansTotal.WithLabelValues(result).Inc()
}

func recordApplyDuration(d time.Duration) {
	applyDuration.Observe(d.Seconds())
}

// WriteMetricsTextfile writes the metrics in the node-exporter textfile
// collector format.
func WriteMetricsTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
