package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// KeyFromContent derives a deterministic entity key fragment from text using
// BLAKE2b hashing. Identical content always produces the same fragment, which
// lets seeders and tests mint stable keys without coordination.
func KeyFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return fmt.Sprintf("%016X", binary.LittleEndian.Uint64(sum))
}

// Category identifies one semantic kind of matchable attribute.
// The enumeration is closed: new categories are a code change.
type Category int

const (
	// CategoryUnknown marks a hit that could not be classified.
	CategoryUnknown Category = iota
	// CategoryPhone is a phone number match.
	CategoryPhone
	// CategorySSNLast4 is a match on the last four digits of a tax id.
	CategorySSNLast4
	// CategoryAccountNumber is a full account number match.
	CategoryAccountNumber
	// CategoryAccountLast4 is a match on the last four digits of an account.
	CategoryAccountLast4
	// CategoryEmail is an email address match.
	CategoryEmail
	// CategoryCity is a city name match.
	CategoryCity
	// CategoryState is a state code match.
	CategoryState
	// CategoryZip is a postal code match.
	CategoryZip

	numCategories
)

var categoryNames = map[Category]string{
	CategoryUnknown:       "UNKNOWN",
	CategoryPhone:         "PHONE",
	CategorySSNLast4:      "SSN_LAST4",
	CategoryAccountNumber: "ACCOUNT_NUMBER",
	CategoryAccountLast4:  "ACCOUNT_LAST4",
	CategoryEmail:         "EMAIL",
	CategoryCity:          "CITY",
	CategoryState:         "STATE",
	CategoryZip:           "ZIP",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// IsValid reports whether c is a known, classifiable category.
func (c Category) IsValid() bool {
	return c > CategoryUnknown && c < numCategories
}

// CategorySet is an immutable set of categories represented as a bit set.
// The zero value is the empty set.
type CategorySet uint16

// NewCategorySet builds a set from the given categories.
// CategoryUnknown and out-of-range values are ignored.
func NewCategorySet(categories ...Category) CategorySet {
	var s CategorySet
	for _, c := range categories {
		s = s.With(c)
	}
	return s
}

// With returns a new set that additionally contains c.
func (s CategorySet) With(c Category) CategorySet {
	if !c.IsValid() {
		return s
	}
	return s | 1<<uint(c)
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return s&(1<<uint(c)) != 0
}

// ContainsAll reports whether every category in required is also in s.
func (s CategorySet) ContainsAll(required CategorySet) bool {
	return s&required == required
}

// Count returns the number of categories in the set.
func (s CategorySet) Count() int {
	count := 0
	for c := CategoryUnknown + 1; c < numCategories; c++ {
		if s.Has(c) {
			count++
		}
	}
	return count
}

// Categories returns the members of the set in declaration order.
func (s CategorySet) Categories() []Category {
	members := make([]Category, 0, s.Count())
	for c := CategoryUnknown + 1; c < numCategories; c++ {
		if s.Has(c) {
			members = append(members, c)
		}
	}
	return members
}

func (s CategorySet) String() string {
	out := "{"
	for i, c := range s.Categories() {
		if i > 0 {
			out += ","
		}
		out += c.String()
	}
	return out + "}"
}

// Hit is one raw match returned by the search collaborator for one
// (entity, field) pair. Hits are created once per parse and never mutated.
type Hit struct {
	Source    string  // source collection the match came from
	EntityKey string  // entity the matched document belongs to
	Field     string  // matched field name, empty when unclassified
	Value     string  // matched field value, empty when unclassified
	Score     float64 // opaque relevance score reported by the collaborator
}

// HitGroup accumulates the hits observed for a single entity key, together
// with the set of categories those hits evidence. Score statistics are
// computed on demand from the stored hit list rather than cached, so they
// can never go stale as hits are added.
type HitGroup struct {
	Key string

	hits       []Hit
	categories CategorySet
}

// NewHitGroup creates an empty group for the given entity key.
func NewHitGroup(key string) *HitGroup {
	return &HitGroup{Key: key}
}

// AddHit appends hit to the group. A valid category is added to the group's
// category set; CategoryUnknown leaves the set untouched while the hit still
// counts toward score statistics.
func (g *HitGroup) AddHit(hit Hit, category Category) {
	g.hits = append(g.hits, hit)
	g.categories = g.categories.With(category)
}

// Hits returns the hits in insertion order.
func (g *HitGroup) Hits() []Hit {
	return g.hits
}

// HitCount returns the number of hits in the group.
func (g *HitGroup) HitCount() int {
	return len(g.hits)
}

// Categories returns the set of distinct categories among the group's hits.
func (g *HitGroup) Categories() CategorySet {
	return g.categories
}

// Satisfies reports whether the group's coverage is a superset of required.
func (g *HitGroup) Satisfies(required CategorySet) bool {
	return g.categories.ContainsAll(required)
}

// TotalScore returns the sum of all hit scores, including duplicates within
// a single category.
func (g *HitGroup) TotalScore() float64 {
	total := 0.0
	for _, hit := range g.hits {
		total += hit.Score
	}
	return total
}

// AverageScore returns the mean hit score, or 0.0 for an empty group.
func (g *HitGroup) AverageScore() float64 {
	if len(g.hits) == 0 {
		return 0.0
	}
	return g.TotalScore() / float64(len(g.hits))
}

// MinScore returns the lowest hit score, or 0.0 for an empty group.
func (g *HitGroup) MinScore() float64 {
	if len(g.hits) == 0 {
		return 0.0
	}
	minScore := g.hits[0].Score
	for _, hit := range g.hits[1:] {
		if hit.Score < minScore {
			minScore = hit.Score
		}
	}
	return minScore
}

// MaxScore returns the highest hit score, or 0.0 for an empty group.
func (g *HitGroup) MaxScore() float64 {
	if len(g.hits) == 0 {
		return 0.0
	}
	maxScore := g.hits[0].Score
	for _, hit := range g.hits[1:] {
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}
	return maxScore
}

// RankedResult is one entity that survived ranking.
type RankedResult struct {
	EntityKey    string
	AverageScore float64
}

// PartyDetail is the flat detail record served by the detail store for one
// entity key.
type PartyDetail struct {
	EntityKey    string
	FullName     string
	TaxID        string
	TaxIDLast4   string
	Street       string
	City         string
	State        string
	ZipCode      string
	EntityType   string // e.g. "PERSON", "ORGANIZATION"
	CustomerType string // e.g. "RETAIL", "COMMERCIAL"
}

// SearchResult is one composite row returned by a unified search: the ranked
// entity joined with its detail record. Degraded is set when the detail
// lookup failed and only the aggregated score survives.
type SearchResult struct {
	EntityKey    string
	AverageScore float64
	Detail       *PartyDetail
	Degraded     bool
}
