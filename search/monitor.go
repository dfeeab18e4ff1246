package search

import (
	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/envelope"
)

// SearchMonitor provides hooks to observe the unified search pipeline.
// Implement this interface to track intermediate steps and results.
// Implementations must tolerate concurrent calls when the searcher runs
// detail lookups in parallel.
type SearchMonitor interface {
	Start(terms []string)
	AfterQueryBuild(query string)
	AfterSearch(rawBytes int)
	AfterParse(hits []envelope.Hit)
	AfterGrouping(groups []*core.HitGroup)
	AfterRanking(ranked []core.RankedResult)
	DetailHit(entityKey string)
	DetailMiss(entityKey string)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []string)                    {}
func (n *noopMonitor) AfterQueryBuild(_ string)            {}
func (n *noopMonitor) AfterSearch(_ int)                   {}
func (n *noopMonitor) AfterParse(_ []envelope.Hit)         {}
func (n *noopMonitor) AfterGrouping(_ []*core.HitGroup)    {}
func (n *noopMonitor) AfterRanking(_ []core.RankedResult)  {}
func (n *noopMonitor) DetailHit(_ string)                  {}
func (n *noopMonitor) DetailMiss(_ string)                 {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)       {}
