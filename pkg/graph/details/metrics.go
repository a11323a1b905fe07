package details

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts cache usage and detail queries per entity kind. A nil *Metrics records nothing.
type Metrics struct {
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	batches     *prometheus.CounterVec
	notFound    *prometheus.CounterVec
}

// NewMetrics creates the coalescer metrics and registers them with registry
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	if registry == nil {
		return nil, nil
	}

	m := &Metrics{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graph_explorer_details_cache_hits_total",
			Help: "Number of requested entities served from the detail cache",
		}, []string{"kind"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graph_explorer_details_cache_misses_total",
			Help: "Number of requested entities that had to be fetched",
		}, []string{"kind"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graph_explorer_details_batches_total",
			Help: "Number of detail queries sent to the database",
		}, []string{"kind"}),
		notFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graph_explorer_details_not_found_total",
			Help: "Number of requested entities that the database did not return",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{m.cacheHits, m.cacheMisses, m.batches, m.notFound} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) record(kind string, hits, misses, batches, notFound int) {
	if m == nil {
		return
	}

	m.cacheHits.WithLabelValues(kind).Add(float64(hits))
	m.cacheMisses.WithLabelValues(kind).Add(float64(misses))
	m.batches.WithLabelValues(kind).Add(float64(batches))
	m.notFound.WithLabelValues(kind).Add(float64(notFound))
}
