package storage

import (
	"context"

	"github.com/poiesic/identisearch/core"
)

// DetailRepository provides access to party detail records, the flat
// enrichment rows joined onto ranked entities after a search.
// Implementations must be thread-safe and support concurrent access.
type DetailRepository interface {
	// GetPartyDetail retrieves the detail record for an entity key.
	// Returns ErrNotFound if no record exists for the key.
	GetPartyDetail(ctx context.Context, entityKey string) (*core.PartyDetail, error)

	// PutPartyDetails stores one or more detail records, replacing any
	// existing record with the same entity key. Records are validated
	// before the write; an invalid record fails the whole batch.
	PutPartyDetails(ctx context.Context, details ...*core.PartyDetail) error

	// ForEachPartyDetail visits every stored detail record. Iteration
	// stops on the first error from fn.
	ForEachPartyDetail(ctx context.Context, fn func(*core.PartyDetail) error) error

	// Close closes the repository and releases resources.
	Close() error
}
