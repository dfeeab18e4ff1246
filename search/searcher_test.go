package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/envelope"
	"github.com/poiesic/identisearch/storage"
	storagebadger "github.com/poiesic/identisearch/storage/badger"
)

// mockClient is a function-field mock of the Client interface.
type mockClient struct {
	searchFunc func(ctx context.Context, query string, limit int) ([]byte, error)
}

func (m *mockClient) Search(ctx context.Context, query string, limit int) ([]byte, error) {
	return m.searchFunc(ctx, query, limit)
}

func staticClient(envelope []byte) *mockClient {
	return &mockClient{
		searchFunc: func(_ context.Context, _ string, _ int) ([]byte, error) {
			return envelope, nil
		},
	}
}

func newTestRepository(t *testing.T) storage.DetailRepository {
	t.Helper()
	repo, backend, err := storagebadger.NewMemoryDetailRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, backend.Close())
	})
	return repo
}

func seedDetail(t *testing.T, repo storage.DetailRepository, key, name string) {
	t.Helper()
	err := repo.PutPartyDetails(context.Background(), &core.PartyDetail{
		EntityKey: key,
		FullName:  name,
	})
	require.NoError(t, err)
}

// twoPartyEnvelope has CUST1 covering phone and tax-id suffix, CUST2 only
// phone.
const twoPartyEnvelope = `{
	"total_hits": 3,
	"hits": [
		{"index": "party-contact", "score": 90.0, "fields": {"custId": "CUST1", "phoneNumber": "555-0100"}},
		{"index": "party-identity", "score": 80.0, "fields": {"custId": "CUST1", "ssnLast4": "1234"}},
		{"index": "party-contact", "score": 95.0, "fields": {"custId": "CUST2", "phoneNumber": "555-0100"}}
	]
}`

func TestNewUnifiedSearcherRequiresCollaborators(t *testing.T) {
	repo := newTestRepository(t)

	_, err := NewUnifiedSearcher(nil, repo)
	assert.ErrorIs(t, err, ErrClientRequired)

	_, err = NewUnifiedSearcher(staticClient(nil), nil)
	assert.ErrorIs(t, err, ErrDetailRepositoryRequired)
}

func TestNewUnifiedSearcherRejectsBadOptions(t *testing.T) {
	repo := newTestRepository(t)

	_, err := NewUnifiedSearcher(staticClient(nil), repo, WithOverFetch(0))
	assert.Error(t, err)

	_, err = NewUnifiedSearcher(staticClient(nil), repo, WithFuzziness(-1))
	assert.Error(t, err)

	_, err = NewUnifiedSearcher(staticClient(nil), repo, WithLookupPool(0))
	assert.Error(t, err)
}

func TestSearchStrictCoverage(t *testing.T) {
	repo := newTestRepository(t)
	seedDetail(t, repo, "CUST1", "Pat O'Brien")
	seedDetail(t, repo, "CUST2", "Sam Smith")

	searcher, err := NewUnifiedSearcher(staticClient([]byte(twoPartyEnvelope)), repo)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(),
		[]string{"555-0100", "1234"}, classify.SetPhoneSSN, 10)
	require.NoError(t, err)

	// CUST2 lacks the tax-id suffix, so only CUST1 qualifies.
	require.Len(t, results, 1)
	assert.Equal(t, "CUST1", results[0].EntityKey)
	assert.InDelta(t, 85.0, results[0].AverageScore, 1e-9)
	assert.False(t, results[0].Degraded)
	require.NotNil(t, results[0].Detail)
	assert.Equal(t, "Pat O'Brien", results[0].Detail.FullName)
}

func TestSearchBestEffortIncludesPartialCoverage(t *testing.T) {
	repo := newTestRepository(t)
	seedDetail(t, repo, "CUST1", "Pat O'Brien")
	seedDetail(t, repo, "CUST2", "Sam Smith")

	searcher, err := NewUnifiedSearcher(staticClient([]byte(twoPartyEnvelope)), repo)
	require.NoError(t, err)

	results, err := searcher.SearchBestEffort(context.Background(),
		[]string{"555-0100", "1234"}, 10)
	require.NoError(t, err)

	// CUST2's single hit averages 95, above CUST1's 85.
	require.Len(t, results, 2)
	assert.Equal(t, "CUST2", results[0].EntityKey)
	assert.Equal(t, "CUST1", results[1].EntityKey)
}

func TestSearchValidation(t *testing.T) {
	repo := newTestRepository(t)
	called := false
	client := &mockClient{
		searchFunc: func(_ context.Context, _ string, _ int) ([]byte, error) {
			called = true
			return nil, nil
		},
	}

	searcher, err := NewUnifiedSearcher(client, repo)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = searcher.Search(ctx, []string{"x"}, "no-such-set", 10)
	assert.ErrorIs(t, err, ErrUnknownCategorySet)

	_, err = searcher.Search(ctx, []string{"x"}, classify.SetPhoneSSN, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = searcher.Search(ctx, []string{"", "  "}, classify.SetPhoneSSN, 10)
	assert.ErrorIs(t, err, ErrNoSearchTerms)

	_, err = searcher.SearchBestEffort(ctx, nil, 10)
	assert.ErrorIs(t, err, ErrNoSearchTerms)

	assert.False(t, called, "validation failures must not reach the collaborator")
}

func TestSearchWrapsClientFailure(t *testing.T) {
	repo := newTestRepository(t)
	boom := errors.New("connection refused")
	client := &mockClient{
		searchFunc: func(_ context.Context, _ string, _ int) ([]byte, error) {
			return nil, boom
		},
	}

	searcher, err := NewUnifiedSearcher(client, repo)
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(),
		[]string{"x"}, classify.SetPhoneSSN, 10)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.ErrorIs(t, err, boom)
}

func TestSearchMalformedEnvelopeYieldsEmptyResult(t *testing.T) {
	repo := newTestRepository(t)

	searcher, err := NewUnifiedSearcher(staticClient([]byte("<html>oops</html>")), repo)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(),
		[]string{"x"}, classify.SetPhoneSSN, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDegradesOnMissingDetail(t *testing.T) {
	repo := newTestRepository(t)
	seedDetail(t, repo, "CUST1", "Pat O'Brien")
	// CUST2 intentionally unseeded.

	searcher, err := NewUnifiedSearcher(staticClient([]byte(twoPartyEnvelope)), repo)
	require.NoError(t, err)

	results, err := searcher.SearchBestEffort(context.Background(),
		[]string{"555-0100", "1234"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "CUST2", results[0].EntityKey)
	assert.True(t, results[0].Degraded)
	assert.Nil(t, results[0].Detail)
	assert.InDelta(t, 95.0, results[0].AverageScore, 1e-9)

	assert.Equal(t, "CUST1", results[1].EntityKey)
	assert.False(t, results[1].Degraded)
}

func TestSearchOverFetchMultiplier(t *testing.T) {
	repo := newTestRepository(t)
	var gotLimit int
	client := &mockClient{
		searchFunc: func(_ context.Context, _ string, limit int) ([]byte, error) {
			gotLimit = limit
			return []byte(`{"total_hits": 0, "hits": []}`), nil
		},
	}

	searcher, err := NewUnifiedSearcher(client, repo, WithOverFetch(7))
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(),
		[]string{"x"}, classify.SetPhoneSSN, 3)
	require.NoError(t, err)
	assert.Equal(t, 21, gotLimit)
}

func TestSearchQueryComposition(t *testing.T) {
	repo := newTestRepository(t)
	var gotQuery string
	client := &mockClient{
		searchFunc: func(_ context.Context, query string, _ int) ([]byte, error) {
			gotQuery = query
			return []byte(`{"total_hits": 0, "hits": []}`), nil
		},
	}

	searcher, err := NewUnifiedSearcher(client, repo, WithFuzziness(2))
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(),
		[]string{"O'Brien", "1234"}, classify.SetPhoneSSN, 5)
	require.NoError(t, err)
	assert.Equal(t, "MATCH('O''Brien~2') OR MATCH('1234~2')", gotQuery)
}

func TestSearchParallelLookups(t *testing.T) {
	repo := newTestRepository(t)

	const parties = 20
	hits := `{"total_hits": ` + fmt.Sprint(parties) + `, "hits": [`
	for i := 0; i < parties; i++ {
		if i > 0 {
			hits += ","
		}
		key := fmt.Sprintf("CUST%02d", i)
		seedDetail(t, repo, key, "Party "+key)
		hits += fmt.Sprintf(
			`{"index": "party-contact", "score": %d, "fields": {"custId": %q, "phoneNumber": "555-0100"}}`,
			100-i, key)
	}
	hits += `]}`

	searcher, err := NewUnifiedSearcher(staticClient([]byte(hits)), repo, WithLookupPool(4))
	require.NoError(t, err)
	defer searcher.Release()

	results, err := searcher.SearchBestEffort(context.Background(),
		[]string{"555-0100"}, parties)
	require.NoError(t, err)
	require.Len(t, results, parties)

	for i, result := range results {
		expected := fmt.Sprintf("CUST%02d", i)
		assert.Equal(t, expected, result.EntityKey)
		assert.False(t, result.Degraded)
		require.NotNil(t, result.Detail)
		assert.Equal(t, "Party "+expected, result.Detail.FullName)
	}
}

// recordingMonitor captures pipeline callbacks for assertion.
type recordingMonitor struct {
	mu       sync.Mutex
	stages   []string
	query    string
	hitCount int
	misses   []string
}

func (r *recordingMonitor) record(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *recordingMonitor) Start(_ []string) { r.record("start") }
func (r *recordingMonitor) AfterQueryBuild(query string) {
	r.query = query
	r.record("query")
}
func (r *recordingMonitor) AfterSearch(_ int) { r.record("search") }
func (r *recordingMonitor) AfterParse(hits []envelope.Hit) {
	r.hitCount = len(hits)
	r.record("parse")
}
func (r *recordingMonitor) AfterGrouping(_ []*core.HitGroup)   { r.record("group") }
func (r *recordingMonitor) AfterRanking(_ []core.RankedResult) { r.record("rank") }
func (r *recordingMonitor) DetailHit(_ string)                 { r.record("detail-hit") }
func (r *recordingMonitor) DetailMiss(key string) {
	r.mu.Lock()
	r.misses = append(r.misses, key)
	r.mu.Unlock()
	r.record("detail-miss")
}
func (r *recordingMonitor) Finish(_ []*core.SearchResult) { r.record("finish") }

func TestSearchWithMonitorCallbacks(t *testing.T) {
	repo := newTestRepository(t)
	seedDetail(t, repo, "CUST1", "Pat O'Brien")

	searcher, err := NewUnifiedSearcher(staticClient([]byte(twoPartyEnvelope)), repo)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(),
		[]string{"555-0100", "1234"}, classify.SetPhoneSSN, 10, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{
		"start", "query", "search", "parse", "group", "rank", "detail-hit", "finish",
	}, monitor.stages)
	assert.Equal(t, "MATCH('555-0100~1') OR MATCH('1234~1')", monitor.query)
	assert.Equal(t, 3, monitor.hitCount)
	assert.Empty(t, monitor.misses)
}

func TestMetricsMonitorCounts(t *testing.T) {
	repo := newTestRepository(t)
	seedDetail(t, repo, "CUST1", "Pat O'Brien")

	searcher, err := NewUnifiedSearcher(staticClient([]byte(twoPartyEnvelope)), repo)
	require.NoError(t, err)

	monitor, err := NewMetricsMonitor(nil)
	require.NoError(t, err)

	_, err = searcher.SearchWithMonitor(context.Background(),
		[]string{"555-0100", "1234"}, classify.SetPhoneSSN, 10, monitor)
	require.NoError(t, err)
}
