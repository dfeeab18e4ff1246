package search

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/envelope"
)

// MetricsMonitor is a SearchMonitor that exports pipeline counters to a
// Prometheus registry. A single instance may observe many concurrent
// searches; all counters are safe for concurrent use.
type MetricsMonitor struct {
	searches       prometheus.Counter
	hitsParsed     prometheus.Counter
	entitiesRanked prometheus.Counter
	detailHits     prometheus.Counter
	detailMisses   prometheus.Counter
}

var _ SearchMonitor = (*MetricsMonitor)(nil)

// NewMetricsMonitor creates a monitor registered with reg. A nil reg
// registers with a private registry, which keeps the counters working but
// unexported.
func NewMetricsMonitor(reg prometheus.Registerer) (*MetricsMonitor, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &MetricsMonitor{
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identisearch",
			Name:      "searches_total",
			Help:      "Unified searches started.",
		}),
		hitsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identisearch",
			Name:      "hits_parsed_total",
			Help:      "Raw hits extracted from search collaborator responses.",
		}),
		entitiesRanked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identisearch",
			Name:      "entities_ranked_total",
			Help:      "Entities that survived coverage filtering and ranking.",
		}),
		detailHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identisearch",
			Name:      "detail_hits_total",
			Help:      "Successful detail store lookups.",
		}),
		detailMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identisearch",
			Name:      "detail_misses_total",
			Help:      "Detail store lookups that degraded to a bare entity key.",
		}),
	}

	collectors := []prometheus.Collector{
		m.searches, m.hitsParsed, m.entitiesRanked, m.detailHits, m.detailMisses,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MetricsMonitor) Start(_ []string) {
	m.searches.Inc()
}

func (m *MetricsMonitor) AfterQueryBuild(_ string) {}

func (m *MetricsMonitor) AfterSearch(_ int) {}

func (m *MetricsMonitor) AfterParse(hits []envelope.Hit) {
	m.hitsParsed.Add(float64(len(hits)))
}

func (m *MetricsMonitor) AfterGrouping(_ []*core.HitGroup) {}

func (m *MetricsMonitor) AfterRanking(ranked []core.RankedResult) {
	m.entitiesRanked.Add(float64(len(ranked)))
}

func (m *MetricsMonitor) DetailHit(_ string) {
	m.detailHits.Inc()
}

func (m *MetricsMonitor) DetailMiss(_ string) {
	m.detailMisses.Inc()
}

func (m *MetricsMonitor) Finish(_ []*core.SearchResult) {}
