package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/identisearch/aggregate"
	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/envelope"
	"github.com/poiesic/identisearch/storage"
)

// DefaultOverFetch is the multiplier applied to the caller's limit when
// querying the search collaborator. Coverage filtering happens after the
// round trip, so the collaborator must return more candidates than the
// caller wants rows; a higher multiplier trades larger intermediate result
// sets for fewer coverage false negatives.
const DefaultOverFetch = 10

// Client is the external full-text search collaborator. It executes a
// composed query and returns the raw response envelope.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]byte, error)
}

// UnifiedSearcher runs the full multi-criteria identity search cycle:
// query composition, one search round trip, hit aggregation and ranking,
// and per-entity detail enrichment. Instances hold no per-request state
// and are safe for concurrent use.
type UnifiedSearcher struct {
	client     Client
	details    storage.DetailRepository
	classifier *classify.Classifier
	overFetch  int
	fuzziness  int
	lookupPool *ants.Pool
	logger     *slog.Logger
}

// Option configures a UnifiedSearcher.
type Option func(*UnifiedSearcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *UnifiedSearcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithOverFetch sets the over-fetch multiplier for the search round trip.
// Default is DefaultOverFetch.
func WithOverFetch(k int) Option {
	return func(s *UnifiedSearcher) error {
		if k < 1 {
			return fmt.Errorf("over-fetch multiplier must be at least 1, got %d", k)
		}
		s.overFetch = k
		return nil
	}
}

// WithFuzziness sets the per-term fuzzy tolerance in composed queries.
// Default is DefaultFuzziness.
func WithFuzziness(fuzziness int) Option {
	return func(s *UnifiedSearcher) error {
		if fuzziness < 0 {
			return fmt.Errorf("fuzziness must not be negative, got %d", fuzziness)
		}
		s.fuzziness = fuzziness
		return nil
	}
}

// WithClassifier replaces the default classification rules.
func WithClassifier(classifier *classify.Classifier) Option {
	return func(s *UnifiedSearcher) error {
		if classifier == nil {
			classifier = classify.NewClassifier(nil)
		}
		s.classifier = classifier
		return nil
	}
}

// WithLookupPool enables parallel detail lookups on a worker pool of the
// given size. Without this option lookups run sequentially, which is the
// baseline contract. Each lookup writes into its own result slot, so no
// accumulator is shared between workers.
func WithLookupPool(size int) Option {
	return func(s *UnifiedSearcher) error {
		if size < 1 {
			return fmt.Errorf("lookup pool size must be at least 1, got %d", size)
		}
		if s.lookupPool != nil {
			s.lookupPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.lookupPool = pool
		return nil
	}
}

// NewUnifiedSearcher creates a searcher over the two collaborators.
func NewUnifiedSearcher(client Client, details storage.DetailRepository, opts ...Option) (*UnifiedSearcher, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if details == nil {
		return nil, ErrDetailRepositoryRequired
	}

	s := &UnifiedSearcher{
		client:     client,
		details:    details,
		classifier: classify.NewClassifier(nil),
		overFetch:  DefaultOverFetch,
		fuzziness:  DefaultFuzziness,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release frees the lookup pool, if any. The searcher must not be used
// after Release.
func (s *UnifiedSearcher) Release() {
	if s.lookupPool != nil {
		s.lookupPool.Release()
		s.lookupPool = nil
	}
}

// Search runs a unified search requiring full coverage of the named
// category set. Results are ordered by descending average score, at most
// limit rows.
func (s *UnifiedSearcher) Search(ctx context.Context, terms []string, categorySetID string, limit int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, terms, categorySetID, limit, nil)
}

// SearchWithMonitor runs a unified search with monitoring. The monitor
// receives callbacks at each stage of the pipeline.
func (s *UnifiedSearcher) SearchWithMonitor(ctx context.Context, terms []string, categorySetID string, limit int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	required, ok := classify.RequiredCategorySet(categorySetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategorySet, categorySetID)
	}
	return s.search(ctx, terms, limit, monitor, func(groups []*core.HitGroup) []core.RankedResult {
		return aggregate.StrictCoverageRank(groups, required, limit)
	})
}

// SearchBestEffort runs a unified search ranking every matched entity by
// average score regardless of category coverage.
func (s *UnifiedSearcher) SearchBestEffort(ctx context.Context, terms []string, limit int) ([]*core.SearchResult, error) {
	return s.search(ctx, terms, limit, nil, func(groups []*core.HitGroup) []core.RankedResult {
		return aggregate.BestEffortRank(groups, limit)
	})
}

// search is the shared pipeline behind both ranking policies.
func (s *UnifiedSearcher) search(ctx context.Context, terms []string, limit int, monitor SearchMonitor, rank func([]*core.HitGroup) []core.RankedResult) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	// 1. Validate caller input before touching any collaborator.
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if !hasUsableTerm(terms) {
		return nil, ErrNoSearchTerms
	}

	logger := s.logger.With("requestId", uuid.NewString())
	monitor.Start(terms)

	// 2. Compose the fuzzy disjunction.
	query := BuildFuzzyDisjunction(terms, s.fuzziness)
	monitor.AfterQueryBuild(query)

	// 3. One search round trip with over-fetch to survive coverage filtering.
	raw, err := s.client.Search(ctx, query, limit*s.overFetch)
	if err != nil {
		logger.Error("search collaborator call failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	monitor.AfterSearch(len(raw))

	// 4. Tolerant envelope parse. Malformed responses degrade to zero hits.
	hits := envelope.Parse(raw)
	monitor.AfterParse(hits)

	// 5. Classify and group.
	groups := aggregate.GroupByEntity(hits, s.classifier)
	monitor.AfterGrouping(groups)

	// 6. Rank.
	ranked := rank(groups)
	monitor.AfterRanking(ranked)

	// 7. Detail enrichment; per-row failures degrade, never abort.
	results := s.enrich(ctx, logger, ranked, monitor)
	monitor.Finish(results)

	return results, nil
}

// enrich joins each ranked entity with its detail record. With a lookup
// pool configured, lookups run in parallel and each writes only its own
// slot of the result slice.
func (s *UnifiedSearcher) enrich(ctx context.Context, logger *slog.Logger, ranked []core.RankedResult, monitor SearchMonitor) []*core.SearchResult {
	results := make([]*core.SearchResult, len(ranked))

	if s.lookupPool == nil {
		for i, row := range ranked {
			results[i] = s.lookupDetail(ctx, logger, row, monitor)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, row := range ranked {
		wg.Add(1)
		submitErr := s.lookupPool.Submit(func() {
			defer wg.Done()
			results[i] = s.lookupDetail(ctx, logger, row, monitor)
		})
		if submitErr != nil {
			wg.Done()
			logger.Warn("lookup pool rejected task, degrading row",
				"entityKey", row.EntityKey, "err", submitErr)
			monitor.DetailMiss(row.EntityKey)
			results[i] = degradedResult(row)
		}
	}
	wg.Wait()
	return results
}

// lookupDetail fetches one detail record, degrading to a bare scored key
// when the detail store fails or has no record.
func (s *UnifiedSearcher) lookupDetail(ctx context.Context, logger *slog.Logger, row core.RankedResult, monitor SearchMonitor) *core.SearchResult {
	detail, err := s.details.GetPartyDetail(ctx, row.EntityKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Warn("no detail record for ranked entity", "entityKey", row.EntityKey)
		} else {
			logger.Warn("detail lookup failed", "entityKey", row.EntityKey, "err", err)
		}
		monitor.DetailMiss(row.EntityKey)
		return degradedResult(row)
	}

	monitor.DetailHit(row.EntityKey)
	return &core.SearchResult{
		EntityKey:    row.EntityKey,
		AverageScore: row.AverageScore,
		Detail:       detail,
	}
}

func degradedResult(row core.RankedResult) *core.SearchResult {
	return &core.SearchResult{
		EntityKey:    row.EntityKey,
		AverageScore: row.AverageScore,
		Degraded:     true,
	}
}

func hasUsableTerm(terms []string) bool {
	for _, term := range terms {
		if strings.TrimSpace(term) != "" {
			return true
		}
	}
	return false
}
