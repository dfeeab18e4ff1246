package aggregate

import (
	"sort"

	"github.com/poiesic/identisearch/core"
)

// StrictCoverageRank retains only groups whose category coverage is a
// superset of required, ranks them by descending average score, and
// truncates to limit. Input groups are not mutated.
func StrictCoverageRank(groups []*core.HitGroup, required core.CategorySet, limit int) []core.RankedResult {
	covered := make([]*core.HitGroup, 0, len(groups))
	for _, group := range groups {
		if group.Satisfies(required) {
			covered = append(covered, group)
		}
	}
	return rankByAverage(covered, limit)
}

// BestEffortRank ranks all groups by descending average score regardless of
// coverage, truncating to limit. Categories an entity never matched simply
// do not contribute to its average; there is no further penalty.
func BestEffortRank(groups []*core.HitGroup, limit int) []core.RankedResult {
	return rankByAverage(groups, limit)
}

// rankByAverage orders groups by average score descending. Equal averages
// tie-break on entity key ascending so ranking is deterministic regardless
// of input order.
func rankByAverage(groups []*core.HitGroup, limit int) []core.RankedResult {
	ranked := make([]core.RankedResult, 0, len(groups))
	for _, group := range groups {
		ranked = append(ranked, core.RankedResult{
			EntityKey:    group.Key,
			AverageScore: group.AverageScore(),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageScore != ranked[j].AverageScore {
			return ranked[i].AverageScore > ranked[j].AverageScore
		}
		return ranked[i].EntityKey < ranked[j].EntityKey
	})

	if limit < 0 {
		limit = 0
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
