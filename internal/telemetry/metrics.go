package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FormMetrics holds Prometheus metrics for the account form funnel.
type FormMetrics struct {
	// SubmissionsTotal counts submit attempts by form type and outcome
	// (proceed, blocked, upstream_error).
	SubmissionsTotal *prometheus.CounterVec

	// ValidationFailures counts individual field failures at submit time.
	ValidationFailures *prometheus.CounterVec

	// CommerceLatency tracks storefront API call duration per operation.
	CommerceLatency *prometheus.HistogramVec
}

// NewFormMetrics creates the account form collectors and registers them on
// the default Prometheus registry.
func NewFormMetrics(namespace string) *FormMetrics {
	return NewFormMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewFormMetricsWith registers the collectors on a specific registry. Tests
// use this with a fresh registry per test.
func NewFormMetricsWith(reg prometheus.Registerer, namespace string) *FormMetrics {
	if namespace == "" {
		namespace = "storefront"
	}
	factory := promauto.With(reg)

	return &FormMetrics{
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "form_submissions_total",
				Help:      "Form submit attempts by form type and outcome",
			},
			[]string{"form", "outcome"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "form_validation_failures_total",
				Help:      "Field validation failures recorded at submit time",
			},
			[]string{"form", "field"},
		),
		CommerceLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "commerce_request_duration_seconds",
				Help:      "Storefront API call duration per operation",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
	}
}
