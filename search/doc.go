// Package search composes fuzzy disjunction queries and orchestrates the
// unified identity search cycle: one round trip against a search
// collaborator, tolerant envelope parsing, hit aggregation, coverage-based
// ranking, and detail enrichment from the detail repository.
//
// The orchestrator reports typed failures only for caller input validation
// and the collaborator round trip itself. An empty hit list, an empty rank,
// or a missing detail record are all valid outcomes: the first two produce
// empty result slices, the last a degraded result row.
package search
