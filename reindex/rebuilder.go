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


package reindex

import (
	"context"
	"io"
	"time"

	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/storage"
)

const (
	// DefaultBatchSize is the number of records handed to the processor
	// at a time.
	DefaultBatchSize = 100

	// DefaultReportInterval is the progress reporting cadence in records.
	DefaultReportInterval = 100
)

// Config holds rebuild tuning knobs.
type Config struct {
	BatchSize      int
	ReportInterval int
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the standard rebuild configuration.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultReportInterval,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

// Rebuilder streams the detail store through the batch processor.
type Rebuilder struct {
	details   storage.DetailRepository
	processor *BatchProcessor
	progress  *ProgressTracker
	batchSize int
}

// NewRebuilder creates a rebuilder. Progress output goes to progressWriter,
// typically os.Stderr.
func NewRebuilder(details storage.DetailRepository, indexer Indexer, cfg *Config, progressWriter io.Writer) (*Rebuilder, error) {
	if details == nil {
		return nil, ErrRepositoryRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Rebuilder{
		details:   details,
		processor: NewBatchProcessor(indexer, cfg.MaxRetries, cfg.RetryDelay),
		progress:  NewProgressTracker(progressWriter, cfg.ReportInterval),
		batchSize: batchSize,
	}, nil
}

// Run rebuilds the derivable indexes. It returns the number of detail
// records processed.
func (r *Rebuilder) Run(ctx context.Context) (int, error) {
	r.progress.Start()
	defer r.progress.Finish()

	batch := make([]*core.PartyDetail, 0, r.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.processor.Process(ctx, batch); err != nil {
			return err
		}
		r.progress.Add(len(batch))
		batch = batch[:0]
		return nil
	}

	err := r.details.ForEachPartyDetail(ctx, func(detail *core.PartyDetail) error {
		batch = append(batch, detail)
		if len(batch) == r.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return r.progress.Count(), err
	}
	if err := flush(); err != nil {
		return r.progress.Count(), err
	}
	return r.progress.Count(), nil
}
