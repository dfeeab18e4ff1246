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


package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	bleveq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/search"
)

// maxFuzziness is the largest edit distance the underlying engine accepts.
const maxFuzziness = 2

// Sources lists the per-source index names, one full-text index each.
var Sources = []string{
	classify.SourceContact,
	classify.SourceIdentity,
	classify.SourceAccount,
	classify.SourceAddress,
}

// FullText is a multi-source full-text index. Each source collection gets
// its own bleve index; queries fan out over all of them through an alias,
// and each hit reports the source index it came from. FullText implements
// search.Client by returning the alias search result as a raw JSON
// envelope.
type FullText struct {
	indexes map[string]bleve.Index
	alias   bleve.IndexAlias
}

var _ search.Client = (*FullText)(nil)

// Open opens or creates the per-source indexes under basePath.
func Open(basePath string) (*FullText, error) {
	return openAll(func(source string) (bleve.Index, error) {
		path := filepath.Join(basePath, source)
		idx, err := bleve.Open(path)
		if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
			if mkErr := os.MkdirAll(basePath, 0o755); mkErr != nil {
				return nil, mkErr
			}
			idx, err = bleve.New(path, bleve.NewIndexMapping())
		}
		return idx, err
	})
}

// NewMemIndex creates a fully in-memory multi-source index, used by tests
// and the bench command.
func NewMemIndex() (*FullText, error) {
	return openAll(func(string) (bleve.Index, error) {
		return bleve.NewMemOnly(bleve.NewIndexMapping())
	})
}

func openAll(openOne func(source string) (bleve.Index, error)) (*FullText, error) {
	ft := &FullText{
		indexes: map[string]bleve.Index{},
		alias:   bleve.NewIndexAlias(),
	}
	for _, source := range Sources {
		idx, err := openOne(source)
		if err != nil {
			ft.Close()
			return nil, fmt.Errorf("opening index for source %q: %w", source, err)
		}
		idx.SetName(source)
		ft.indexes[source] = idx
		ft.alias.Add(idx)
	}
	return ft, nil
}

// IndexDocument indexes one scalar-field document into the named source.
// The document's fields become the hit payload returned by Search.
func (ft *FullText) IndexDocument(source, id string, fields map[string]string) error {
	idx, ok := ft.indexes[source]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return idx.Index(id, fields)
}

// Search implements search.Client. The composed query's quoted terms are
// translated into a fuzzy disjunction over all sources, and the engine's
// result is returned verbatim as its JSON envelope.
func (ft *FullText) Search(ctx context.Context, query string, limit int) ([]byte, error) {
	terms := search.QueryTerms(query)
	if len(terms) == 0 {
		return json.Marshal(&bleve.SearchResult{})
	}

	disjuncts := make([]bleveq.Query, 0, len(terms))
	for _, term := range terms {
		mq := bleve.NewMatchQuery(term.Text)
		fuzziness := term.Fuzziness
		if fuzziness > maxFuzziness {
			fuzziness = maxFuzziness
		}
		mq.SetFuzziness(fuzziness)
		disjuncts = append(disjuncts, mq)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(disjuncts...), limit, 0, false)
	req.Fields = []string{"*"}

	result, err := ft.alias.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// Close closes every per-source index, reporting the first failure.
func (ft *FullText) Close() error {
	var firstErr error
	for _, idx := range ft.indexes {
		if err := idx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
