package metrics

import "github.com/prometheus/client_golang/prometheus"

// Chat pipeline Prometheus metrics.
var (
	GateDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unidesk",
			Name:      "gate_decisions_total",
			Help:      "Domain gate classification outcomes",
		},
		[]string{"classification"}, // "in_domain" / "out_of_domain" / "unknown"
	)

	FAQHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unidesk",
			Name:      "faq_hits_total",
			Help:      "FAQ fast-path lookups",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RebuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unidesk",
			Name:      "index_rebuilds_total",
			Help:      "Index rebuild attempts by outcome",
		},
		[]string{"status"}, // "success" / "failure" / "locked" / "busy"
	)

	RebuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "unidesk",
			Name:      "index_rebuild_duration_seconds",
			Help:      "Index rebuild duration in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unidesk",
			Name:      "generation_requests_total",
			Help:      "Total number of answer generation requests",
		},
		[]string{"model", "status"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers chat pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(GateDecisionsTotal)
	prometheus.MustRegister(FAQHitsTotal)
	prometheus.MustRegister(RebuildsTotal)
	prometheus.MustRegister(RebuildDuration)
	prometheus.MustRegister(GenerationRequestsTotal)
	pipelineMetricsRegistered = true
}
