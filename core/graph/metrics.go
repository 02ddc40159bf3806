package graph

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the work done by an Engine.
type Metrics struct {
	Expansions     prometheus.Counter
	CacheHits      prometheus.Counter
	Traversals     *prometheus.CounterVec
	DiscoveryDepth prometheus.Histogram
}

// NewMetrics creates the engine metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Expansions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wsdgraph_neighbor_expansions_total",
				Help: "Total number of synsets whose neighbors were expanded.",
			},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wsdgraph_neighbor_cache_hits_total",
				Help: "Total number of neighbor lookups served from the cache.",
			},
		),
		Traversals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wsdgraph_traversals_total",
				Help: "Total number of traversals by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		DiscoveryDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wsdgraph_discovery_depth",
				Help:    "Depth at which traversals found their target.",
				Buckets: prometheus.LinearBuckets(0, 1, 13),
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Expansions, m.CacheHits, m.Traversals, m.DiscoveryDepth)
	}

	return m
}

func (m *Metrics) expanded() {
	if m != nil {
		m.Expansions.Inc()
	}
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) traversal(operation string, outcome string, depth int) {
	if m == nil {
		return
	}
	m.Traversals.WithLabelValues(operation, outcome).Inc()
	if outcome == outcomeFound {
		m.DiscoveryDepth.Observe(float64(depth))
	}
}
