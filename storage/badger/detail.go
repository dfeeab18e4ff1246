package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/storage"
)

// DetailRepository implements storage.DetailRepository for BadgerDB.
type DetailRepository struct {
	backend *Backend
}

var _ storage.DetailRepository = (*DetailRepository)(nil)

// NewDetailRepository creates a new DetailRepository over an open backend.
func NewDetailRepository(backend *Backend) *DetailRepository {
	return &DetailRepository{backend: backend}
}

// Close releases repository resources. The backend is owned by the caller
// and must be closed separately.
func (r *DetailRepository) Close() error {
	return nil
}

// PutPartyDetails stores one or more detail records, replacing any existing
// record with the same entity key.
func (r *DetailRepository) PutPartyDetails(ctx context.Context, details ...*core.PartyDetail) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	for _, detail := range details {
		if err := core.ValidatePartyDetail(detail); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, detail := range details {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := makePartyDetailKey(detail.EntityKey)
			if err := tx.Set(key, storage.MarshalPartyDetail(detail)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPartyDetail retrieves the detail record for an entity key.
func (r *DetailRepository) GetPartyDetail(ctx context.Context, entityKey string) (*core.PartyDetail, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var detail *core.PartyDetail
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePartyDetailKey(entityKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(value []byte) error {
			detail, err = storage.UnmarshalPartyDetail(value)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ForEachPartyDetail visits every stored detail record in key order.
func (r *DetailRepository) ForEachPartyDetail(ctx context.Context, fn func(*core.PartyDetail) error) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(partyDetailPrefix + ":")
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var detail *core.PartyDetail
			err := iter.Item().Value(func(value []byte) error {
				var err error
				detail, err = storage.UnmarshalPartyDetail(value)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(detail); err != nil {
				return err
			}
		}
		return nil
	}, false)
}
