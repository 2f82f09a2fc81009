package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reorder outcomes recorded by ReorderMetrics.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// ReorderMetrics counts drag-and-drop reorder requests by outcome.
type ReorderMetrics struct {
	Total *prometheus.CounterVec
}

// NewReorderMetrics creates and registers reorder metrics on reg.
func NewReorderMetrics(reg prometheus.Registerer) *ReorderMetrics {
	m := &ReorderMetrics{
		Total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reorders_total",
			Help:      "Total number of item reorder requests by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Total)
	return m
}

// Observe records one reorder outcome. A nil receiver is a no-op so
// handlers can run without metrics wired.
func (m *ReorderMetrics) Observe(result string) {
	if m == nil {
		return
	}
	m.Total.WithLabelValues(result).Inc()
}
