// Seeder populates a database with deterministic synthetic parties so the
// search pipeline can be exercised without production data. The same count
// always produces the same parties, keys included.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/identisearch"
	"github.com/poiesic/identisearch/classify"
	"github.com/poiesic/identisearch/core"
)

var firstNames = []string{
	"Pat", "Dana", "Sam", "Alex", "Morgan", "Casey", "Jordan", "Riley",
	"Quinn", "Avery", "Harper", "Rowan", "Sage", "Finley", "Emerson",
}

var lastNames = []string{
	"O'Brien", "Reyes", "Smith", "Nguyen", "Okafor", "Kowalski", "Haddad",
	"Lindqvist", "Moreau", "Tanaka", "Castellanos", "Whitfield", "Abara",
}

var cities = []struct {
	city, state, zip string
}{
	{"Springfield", "IL", "62701"},
	{"Portland", "OR", "97201"},
	{"Savannah", "GA", "31401"},
	{"Tulsa", "OK", "74103"},
	{"Burlington", "VT", "05401"},
	{"Laredo", "TX", "78040"},
	{"Spokane", "WA", "99201"},
}

var (
	dbPath = flag.String("db", "./identisearch_db", "base directory for the stores")
	count  = flag.Int("count", 500, "number of synthetic parties")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// syntheticParty builds party n. Every derived attribute is a pure function
// of n, so reseeding the same count is idempotent apart from index scoring.
func syntheticParty(n int) (*core.PartyDetail, map[string]map[string]string) {
	first := firstNames[n%len(firstNames)]
	last := lastNames[(n/len(firstNames))%len(lastNames)]
	fullName := fmt.Sprintf("%s %s", first, last)
	place := cities[n%len(cities)]

	key := core.KeyFromContent(fmt.Sprintf("party:%06d:%s", n, fullName))
	phone := fmt.Sprintf("555-%04d", n%10000)
	email := fmt.Sprintf("%s.%s.%d@example.com", first, last, n)
	taxID := fmt.Sprintf("%09d", 100000000+n)
	account := fmt.Sprintf("ACCT-%08d", 10000000+n)

	detail := &core.PartyDetail{
		EntityKey:    key,
		FullName:     fullName,
		TaxID:        taxID,
		TaxIDLast4:   taxID[len(taxID)-4:],
		Street:       fmt.Sprintf("%d Main St", 100+n%900),
		City:         place.city,
		State:        place.state,
		ZipCode:      place.zip,
		EntityType:   "INDIVIDUAL",
		CustomerType: "RETAIL",
	}

	docs := map[string]map[string]string{
		classify.SourceContact: {
			"custId":      key,
			"phoneNumber": phone,
			"email":       email,
		},
		classify.SourceIdentity: {
			"custId":   key,
			"ssnLast4": detail.TaxIDLast4,
		},
		classify.SourceAccount: {
			"custId":        key,
			"accountNumber": account,
			"accountLast4":  account[len(account)-4:],
		},
		classify.SourceAddress: {
			"custId":  key,
			"city":    place.city,
			"state":   place.state,
			"zipCode": place.zip,
		},
	}
	return detail, docs
}

func seed(ctx context.Context, db *identisearch.Database, count int) error {
	details := db.DetailRepository()
	idx := db.Index()

	for n := 0; n < count; n++ {
		detail, docs := syntheticParty(n)
		if err := details.PutPartyDetails(ctx, detail); err != nil {
			return fmt.Errorf("storing detail %d: %w", n, err)
		}
		for source, fields := range docs {
			docID := fmt.Sprintf("%s-%06d", source, n)
			if err := idx.IndexDocument(source, docID, fields); err != nil {
				return fmt.Errorf("indexing %s for %d: %w", source, n, err)
			}
		}
		if (n+1)%100 == 0 {
			slog.Info("seeding progress", "parties", n+1)
		}
	}
	return nil
}

func main() {
	db, err := identisearch.NewDatabase(*dbPath)
	if err != nil {
		slog.Error("opening database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seed(context.Background(), db, *count); err != nil {
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
	slog.Info("seeding complete", "parties", *count, "db", *dbPath)
}
