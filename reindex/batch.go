package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/core"
)

// Indexer is the index write surface the rebuilder needs.
type Indexer interface {
	IndexDocument(source, id string, fields map[string]string) error
}

// BatchProcessor projects detail records into source documents and writes
// them to the index with retry.
type BatchProcessor struct {
	indexer        Indexer
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(indexer Indexer, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		indexer:        indexer,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process writes the derivable source documents for a batch of details.
// Records with nothing to project are skipped silently.
func (bp *BatchProcessor) Process(ctx context.Context, details []*core.PartyDetail) error {
	for _, detail := range details {
		for source, fields := range ProjectDocuments(detail) {
			docID := fmt.Sprintf("%s-%s", source, detail.EntityKey)
			err := RetryWithBackoff(ctx, func() error {
				return bp.indexer.IndexDocument(source, docID, fields)
			}, bp.maxRetries, bp.retryBaseDelay)
			if err != nil {
				return fmt.Errorf("indexing %s for %s after %d attempts: %w",
					source, detail.EntityKey, bp.maxRetries, err)
			}
		}
	}
	return nil
}

// ProjectDocuments derives the rebuildable source documents from a detail
// record: an identity document when the tax-id suffix is present, and an
// address document when any locality field is.
func ProjectDocuments(detail *core.PartyDetail) map[string]map[string]string {
	docs := map[string]map[string]string{}

	if detail.TaxIDLast4 != "" {
		docs[classify.SourceIdentity] = map[string]string{
			"custId":   detail.EntityKey,
			"ssnLast4": detail.TaxIDLast4,
		}
	}

	if detail.City != "" || detail.State != "" || detail.ZipCode != "" {
		doc := map[string]string{"custId": detail.EntityKey}
		if detail.City != "" {
			doc["city"] = detail.City
		}
		if detail.State != "" {
			doc["state"] = detail.State
		}
		if detail.ZipCode != "" {
			doc["zipCode"] = detail.ZipCode
		}
		docs[classify.SourceAddress] = doc
	}

	return docs
}
