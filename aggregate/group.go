package aggregate

import (
	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/envelope"
)

// GroupByEntity folds a flat hit list into per-entity groups in a single
// linear pass. Groups are created lazily on the first hit for a key and
// returned in first-seen order.
//
// Each raw hit is classified once; hits the classifier cannot place are
// still added to their group (they count toward score statistics) but
// contribute no category coverage.
func GroupByEntity(hits []envelope.Hit, classifier *classify.Classifier) []*core.HitGroup {
	byKey := make(map[string]*core.HitGroup, len(hits))
	groups := make([]*core.HitGroup, 0, len(hits))

	for _, raw := range hits {
		group, ok := byKey[raw.EntityKey]
		if !ok {
			group = core.NewHitGroup(raw.EntityKey)
			byKey[raw.EntityKey] = group
			groups = append(groups, group)
		}

		hit := core.Hit{
			Source:    raw.Source,
			EntityKey: raw.EntityKey,
			Score:     raw.Score,
		}
		category, field, classified := classifier.Classify(raw.Source, raw.Fields)
		if classified {
			hit.Field = field
			hit.Value = raw.Fields[field]
		}
		group.AddHit(hit, category)
	}
	return groups
}
