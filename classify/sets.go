package classify

import (
	"sort"

	"github.com/poiesic/identisearch/core"
)

// Required category set identifiers accepted by the orchestrator. Each names
// a fixed combination of categories an entity must cover to qualify for a
// use case.
const (
	SetPhoneSSN         = "phone-ssn"
	SetPhoneAccount     = "phone-account"
	SetEmailAccount     = "email-account"
	SetContactCore      = "contact-core"
	SetLocality         = "locality"
	SetIdentityLocality = "identity-locality"
	SetFullProfile      = "full-profile"
)

var categorySets = map[string]core.CategorySet{
	SetPhoneSSN:     core.NewCategorySet(core.CategoryPhone, core.CategorySSNLast4),
	SetPhoneAccount: core.NewCategorySet(core.CategoryPhone, core.CategoryAccountNumber),
	SetEmailAccount: core.NewCategorySet(core.CategoryEmail, core.CategoryAccountLast4),
	SetContactCore: core.NewCategorySet(
		core.CategoryEmail, core.CategoryPhone, core.CategoryAccountNumber),
	SetLocality: core.NewCategorySet(
		core.CategoryCity, core.CategoryState, core.CategoryZip),
	SetIdentityLocality: core.NewCategorySet(
		core.CategoryEmail, core.CategorySSNLast4, core.CategoryCity, core.CategoryState),
	SetFullProfile: core.NewCategorySet(
		core.CategoryPhone, core.CategoryEmail, core.CategoryAccountLast4,
		core.CategoryCity, core.CategoryZip),
}

// RequiredCategorySet resolves a category set identifier to its member set.
// ok is false for unknown identifiers.
func RequiredCategorySet(id string) (set core.CategorySet, ok bool) {
	set, ok = categorySets[id]
	return set, ok
}

// CategorySetIDs returns all known set identifiers in sorted order.
func CategorySetIDs() []string {
	ids := make([]string, 0, len(categorySets))
	for id := range categorySets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
