// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package identisearch

import (
	"log/slog"
	"path/filepath"

	"github.com/poiesic/identisearch/index"
	"github.com/poiesic/identisearch/search"
	"github.com/poiesic/identisearch/storage"
	"github.com/poiesic/identisearch/storage/badger"
)

// Database bundles the two stores behind unified search: the detail
// repository and the per-source full-text indexes, both rooted under one
// base directory.
type Database struct {
	backend    *badger.Backend
	detailRepo storage.DetailRepository
	fullText   *index.FullText
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemoryStores keeps both stores fully in memory. Used by tests and
// the bench command.
func WithInMemoryStores() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the detail store under basePath/details and the
// full-text indexes under basePath/index.
func NewDatabase(basePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filepath.Join(basePath, "details"), options.inMemory)
	if err != nil {
		return nil, err
	}
	detailRepo := badger.NewDetailRepository(backend)

	// Open full-text indexes
	var fullText *index.FullText
	if options.inMemory {
		fullText, err = index.NewMemIndex()
	} else {
		fullText, err = index.Open(filepath.Join(basePath, "index"))
	}
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:    backend,
		detailRepo: detailRepo,
		fullText:   fullText,
		logger:     slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close indexes first
	if err := db.fullText.Close(); err != nil {
		db.logger.Error("error closing full-text indexes", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DetailRepository() storage.DetailRepository {
	return db.detailRepo
}

func (db *Database) Index() *index.FullText {
	return db.fullText
}

// NewSearcher builds a unified searcher over this database's index and
// detail store.
func (db *Database) NewSearcher(opts ...search.Option) (*search.UnifiedSearcher, error) {
	return search.NewUnifiedSearcher(db.fullText, db.detailRepo, opts...)
}
