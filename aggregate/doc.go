// Package aggregate groups raw search hits by entity and ranks the groups.
//
// Grouping is a single linear pass; score statistics live on the groups and
// are recomputed from the stored hit lists on demand. The two ranking
// policies, strict-coverage and best-effort, are deliberately separate pure
// functions over the same immutable group collection so each can be
// specified and tested in isolation.
package aggregate
