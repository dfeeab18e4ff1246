package search

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFuzziness is the edit-distance tolerance requested per term.
const DefaultFuzziness = 1

// BuildFuzzyDisjunction composes a query asking the search collaborator to
// match ANY of the given terms with fuzzy tolerance. Each term becomes one
// MATCH('<term>~<fuzziness>') predicate; predicates are joined with OR in
// the original term order. Single quotes inside a term are doubled before
// embedding.
//
// Blank terms are dropped. Zero usable terms yield an empty string; whether
// to execute such a query is the caller's decision, not this function's.
func BuildFuzzyDisjunction(terms []string, fuzziness int) string {
	predicates := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		escaped := strings.ReplaceAll(term, "'", "''")
		predicates = append(predicates, fmt.Sprintf("MATCH('%s~%d')", escaped, fuzziness))
	}
	return strings.Join(predicates, " OR ")
}

// Term is one fuzzy search term recovered from a composed query.
type Term struct {
	Text      string
	Fuzziness int
}

// QueryTerms recovers the terms of a query composed by
// BuildFuzzyDisjunction: every quoted span is one term, doubled quotes are
// collapsed back, and a trailing ~N is split off as the fuzziness. In-process
// collaborator adapters use this to translate the composed query into their
// native query types.
func QueryTerms(query string) []Term {
	terms := make([]Term, 0, 4)
	runes := []rune(query)

	for i := 0; i < len(runes); i++ {
		if runes[i] != '\'' {
			continue
		}
		var span strings.Builder
		i++
		for i < len(runes) {
			if runes[i] == '\'' {
				if i+1 < len(runes) && runes[i+1] == '\'' {
					span.WriteRune('\'')
					i += 2
					continue
				}
				break
			}
			span.WriteRune(runes[i])
			i++
		}
		if text, fuzziness, ok := splitFuzziness(span.String()); ok {
			terms = append(terms, Term{Text: text, Fuzziness: fuzziness})
		}
	}
	return terms
}

// splitFuzziness separates a trailing ~N marker from a term.
func splitFuzziness(s string) (text string, fuzziness int, ok bool) {
	idx := strings.LastIndex(s, "~")
	if idx < 0 {
		text = s
	} else {
		n, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			text = s
		} else {
			text = s[:idx]
			fuzziness = n
		}
	}
	return text, fuzziness, text != ""
}
