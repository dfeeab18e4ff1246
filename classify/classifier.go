package classify

import (
	"github.com/poiesic/identisearch/core"
)

// Source collection labels carried by hits.
const (
	SourceContact  = "party-contact"
	SourceIdentity = "party-identity"
	SourceAccount  = "party-account"
	SourceAddress  = "party-address"
)

// Scalar payload field names shared by the indexer and the classifier.
const (
	FieldPhoneNumber   = "phoneNumber"
	FieldEmail         = "email"
	FieldSSNLast4      = "ssnLast4"
	FieldAccountNumber = "accountNumber"
	FieldAccountLast4  = "accountLast4"
	FieldCity          = "city"
	FieldState         = "state"
	FieldZipCode       = "zipCode"
)

// FieldRule binds one payload field to the category it evidences.
type FieldRule struct {
	Field    string
	Category core.Category
}

// Rules maps a source collection label to its field rules in precedence
// order, highest first. When several candidate fields are populated on one
// hit, the earliest rule wins.
type Rules map[string][]FieldRule

// DefaultRules returns the standard classification table.
//
// Precedence per source:
//   - party-contact:  phoneNumber, email
//   - party-identity: email, ssnLast4 (an identity hit with an email field
//     is an email match, otherwise a tax-id-suffix match)
//   - party-account:  accountNumber, accountLast4
//   - party-address:  zipCode, city, state
//
// The returned map is a fresh copy; callers may extend it before handing
// it to NewClassifier without affecting other classifiers.
func DefaultRules() Rules {
	return Rules{
		SourceContact: {
			{Field: FieldPhoneNumber, Category: core.CategoryPhone},
			{Field: FieldEmail, Category: core.CategoryEmail},
		},
		SourceIdentity: {
			{Field: FieldEmail, Category: core.CategoryEmail},
			{Field: FieldSSNLast4, Category: core.CategorySSNLast4},
		},
		SourceAccount: {
			{Field: FieldAccountNumber, Category: core.CategoryAccountNumber},
			{Field: FieldAccountLast4, Category: core.CategoryAccountLast4},
		},
		SourceAddress: {
			{Field: FieldZipCode, Category: core.CategoryZip},
			{Field: FieldCity, Category: core.CategoryCity},
			{Field: FieldState, Category: core.CategoryState},
		},
	}
}

// Classifier maps a hit's source label and populated payload fields to a
// Category. It is a pure lookup over an immutable rule table; it holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier over the given rule table.
// A nil table means DefaultRules.
func NewClassifier(rules Rules) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify resolves the category evidenced by a hit from the given source
// with the given populated fields, along with the field that decided it.
// ok is false when the source is unrecognized or none of its ruled fields
// is populated; such hits stay grouped but contribute no coverage.
func (c *Classifier) Classify(source string, fields map[string]string) (category core.Category, field string, ok bool) {
	for _, rule := range c.rules[source] {
		if fields[rule.Field] != "" {
			return rule.Category, rule.Field, true
		}
	}
	return core.CategoryUnknown, "", false
}
