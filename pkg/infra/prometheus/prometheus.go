package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	latencyBuckets = []float64{
		25, 50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	EvaluationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmod_evaluations_total",
			Help: "Messages evaluated, by outcome",
		},
		[]string{"result", "source"},
	)

	ViolationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmod_violations_total",
			Help: "Messages found in violation, by the check that flagged them",
		},
		[]string{"check"},
	)

	ClassifierFailuresTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmod_classifier_failures_total",
			Help: "Classifier calls that failed and were treated as no violation",
		},
		[]string{"check"},
	)

	ConsequenceFailuresTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmod_consequence_failures_total",
			Help: "Explanation or action calls to the chat platform that failed",
		},
		[]string{"step"},
	)

	CheckLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustmod_check_latency_ms",
			Help:    "Classifier latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"check"},
	)
)

var initOnce sync.Once

// Initialize installs the registry as the process default.
func Initialize() {
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

func Registry() *prometheus.Registry {
	return registry
}
