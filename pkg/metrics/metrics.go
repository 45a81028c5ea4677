// Package metrics exposes prometheus instrumentation for engine runs.
// The engine only records; callers decide whether and where to serve the
// registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var registry = prometheus.NewRegistry()

var (
	OptimizerRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "league",
		Subsystem: "optimizer",
		Name:      "runs_total",
		Help:      "Number of lineup optimization runs.",
	})
	OptimizerInfeasible = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "league",
		Subsystem: "optimizer",
		Name:      "infeasible_total",
		Help:      "Number of optimization runs that ended infeasible.",
	})
	OptimizeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "league",
		Subsystem: "optimizer",
		Name:      "duration_seconds",
		Help:      "Wall time per lineup optimization run.",
		Buckets:   prometheus.DefBuckets,
	})
	SimulationTrials = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "league",
		Subsystem: "simulator",
		Name:      "trials_total",
		Help:      "Number of Monte Carlo trials executed.",
	})
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "league",
		Subsystem: "simulator",
		Name:      "duration_seconds",
		Help:      "Wall time per season simulation.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	})
)

func init() {
	registry.MustRegister(
		OptimizerRuns,
		OptimizerInfeasible,
		OptimizeDuration,
		SimulationTrials,
		SimulationDuration,
	)
}

// Registry returns the engine's metric registry for callers to serve.
func Registry() *prometheus.Registry { return registry }
