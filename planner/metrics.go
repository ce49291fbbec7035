package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchNonConvergence = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planopt",
		Subsystem: "optimizer",
		Name:      "batch_non_convergence_total",
		Help:      "Number of fixed point batch executions that hit the iteration bound without converging.",
	}, []string{"batch"})

	ruleErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planopt",
		Subsystem: "optimizer",
		Name:      "rule_errors_total",
		Help:      "Number of rule applications that returned an error.",
	}, []string{"batch"})

	optimizeDurations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "planopt",
		Subsystem: "optimizer",
		Name:      "optimize_duration_seconds",
		Help:      "Time taken to run the full batch sequence over a plan.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)
