package metrics

import "github.com/prometheus/client_golang/prometheus"

// Diagram preprocessing metrics.
var (
	DiagramsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rag",
			Name:      "diagrams_processed_total",
			Help:      "Diagrams run through term extraction, by detected format",
		},
		[]string{"format"},
	)

	DiagramTermsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rag",
			Name:      "diagram_terms_total",
			Help:      "Raw extracted vs. kept diagram terms",
		},
		[]string{"stage"}, // "extracted" / "kept"
	)
)

// RegisterExtractionMetrics registers diagram preprocessing metrics.
func RegisterExtractionMetrics() {
	prometheus.MustRegister(DiagramsProcessedTotal)
	prometheus.MustRegister(DiagramTermsTotal)
}
