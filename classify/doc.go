// Package classify maps raw search hits to semantic match categories.
//
// Classification is content-sensitive: the same source collection can
// evidence different categories depending on which payload field is
// populated. Ambiguity between several populated fields is resolved by a
// fixed per-source precedence table, declared as data in DefaultRules
// rather than inferred at runtime.
//
// The package also owns the named required-category sets used by the
// unified search orchestrator to decide which entities qualify.
package classify
