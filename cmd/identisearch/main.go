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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/identisearch"
	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/config"
	"github.com/poiesic/identisearch/core"
	"github.com/poiesic/identisearch/reindex"
	"github.com/poiesic/identisearch/search"
)

func main() {
	app := &cli.App{
		Name:  "identisearch",
		Usage: "Unified multi-criteria identity search over party data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a unified search; arguments are the search terms",
				ArgsUsage: "TERM [TERM...]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Base directory for the stores (overrides configuration)",
					},
					&cli.StringFlag{
						Name:    "set",
						Aliases: []string{"s"},
						Usage:   "Required category set: " + strings.Join(classify.CategorySetIDs(), ", "),
						Value:   classify.SetPhoneSSN,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "best-effort",
						Usage: "Rank every matched party regardless of category coverage",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit results as JSON",
					},
				},
			},
			{
				Name:   "sets",
				Usage:  "List the known category set identifiers",
				Action: setsCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the derivable full-text indexes from the detail store",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Base directory for the stores (overrides configuration)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: reindex.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: reindex.DefaultReportInterval,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed index writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "bench",
				Usage:  "Run repeated searches against a seeded database and report timings",
				Action: benchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Base directory for the stores",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "set",
						Usage: "Required category set",
						Value: classify.SetPhoneSSN,
					},
					&cli.IntFlag{
						Name:  "iterations",
						Usage: "Number of searches to run",
						Value: 100,
					},
					&cli.StringSliceFlag{
						Name:  "term",
						Usage: "Search term, repeatable",
						Value: cli.NewStringSlice("555-0100", "0100"),
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*identisearch.Database, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	basePath := c.String("db")
	if basePath == "" {
		basePath = cfg.DataDir
	}
	db, err := identisearch.NewDatabase(basePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database at %s: %w", basePath, err)
	}
	return db, cfg, nil
}

func newSearcher(db *identisearch.Database, cfg *config.Config) (*search.UnifiedSearcher, error) {
	opts := []search.Option{
		search.WithOverFetch(cfg.OverFetch),
		search.WithFuzziness(cfg.Fuzziness),
	}
	if cfg.LookupPoolSize > 0 {
		opts = append(opts, search.WithLookupPool(cfg.LookupPoolSize))
	}
	return db.NewSearcher(opts...)
}

func searchCommand(c *cli.Context) error {
	terms := c.Args().Slice()
	if len(terms) == 0 {
		return fmt.Errorf("at least one search term is required")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := newSearcher(db, cfg)
	if err != nil {
		return err
	}
	defer searcher.Release()

	ctx := context.Background()
	var results []*identisearchResult
	if c.Bool("best-effort") {
		rows, err := searcher.SearchBestEffort(ctx, terms, c.Int("limit"))
		if err != nil {
			return err
		}
		results = convertResults(rows)
	} else {
		rows, err := searcher.Search(ctx, terms, c.String("set"), c.Int("limit"))
		if err != nil {
			return err
		}
		results = convertResults(rows)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no matching parties")
		return nil
	}
	for i, r := range results {
		name := "(no detail record)"
		if r.FullName != "" {
			name = r.FullName
		}
		fmt.Printf("%2d. %-18s %8.2f  %s\n", i+1, r.EntityKey, r.AverageScore, name)
	}
	return nil
}

// identisearchResult is the flattened output row for both renderings.
type identisearchResult struct {
	EntityKey    string  `json:"entityKey"`
	AverageScore float64 `json:"averageScore"`
	FullName     string  `json:"fullName,omitempty"`
	City         string  `json:"city,omitempty"`
	State        string  `json:"state,omitempty"`
	Degraded     bool    `json:"degraded,omitempty"`
}

func convertResults(rows []*core.SearchResult) []*identisearchResult {
	results := make([]*identisearchResult, 0, len(rows))
	for _, row := range rows {
		r := &identisearchResult{
			EntityKey:    row.EntityKey,
			AverageScore: row.AverageScore,
			Degraded:     row.Degraded,
		}
		if row.Detail != nil {
			r.FullName = row.Detail.FullName
			r.City = row.Detail.City
			r.State = row.Detail.State
		}
		results = append(results, r)
	}
	return results
}

func setsCommand(_ *cli.Context) error {
	for _, id := range classify.CategorySetIDs() {
		set, _ := classify.RequiredCategorySet(id)
		fmt.Printf("%-18s %s\n", id, set)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	db, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if cfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	rebuilder, err := reindex.NewRebuilder(db.DetailRepository(), db.Index(), cfg, os.Stderr)
	if err != nil {
		return err
	}

	processed, err := rebuilder.Run(context.Background())
	if err != nil {
		return fmt.Errorf("rebuild failed after %d records: %w", processed, err)
	}
	return nil
}

func benchCommand(c *cli.Context) error {
	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := newSearcher(db, cfg)
	if err != nil {
		return err
	}
	defer searcher.Release()

	registry := prometheus.NewRegistry()
	monitor, err := search.NewMetricsMonitor(registry)
	if err != nil {
		return err
	}

	terms := c.StringSlice("term")
	setID := c.String("set")
	iterations := c.Int("iterations")
	ctx := context.Background()

	var total time.Duration
	var worst time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		if _, err := searcher.SearchWithMonitor(ctx, terms, setID, 10, monitor); err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		elapsed := time.Since(start)
		total += elapsed
		if elapsed > worst {
			worst = elapsed
		}
	}

	fmt.Printf("iterations: %d\n", iterations)
	fmt.Printf("avg:        %s\n", total/time.Duration(iterations))
	fmt.Printf("worst:      %s\n", worst)

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			fmt.Printf("%-36s %.0f\n", family.GetName(), metric.GetCounter().GetValue())
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
