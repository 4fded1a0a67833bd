// Package scan walks the configured seed boards, filters titles through the
// policy and persists anything new.
package scan

import (
	"context"
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/extract"
	"jobscout-engine/internal/store"
)

// Status is the scan state the API exposes.
type Status struct {
	Running   bool   `json:"running"`
	LastRunAt string `json:"lastRunAt"`
	LastOkAt  string `json:"lastOkAt"`
	LastAdded int    `json:"lastAdded"`
	LastError string `json:"lastError"`
}

const perSeedTimeout = 2 * time.Minute

// RunOnce scans every seed concurrently. Failed boards are logged and
// skipped; the run only errors when the group context dies.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config, reg *extract.Registry, onNewListing func()) (added int, err error) {
	var total atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, seed := range cfg.Scan.Seeds {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, perSeedTimeout)
			defer cancel()

			roster := reg.EngineeringJobs(sctx, seed.URL, cfg.Policy)
			if roster.Failure != "" {
				log.Printf("[scan] seed=%q failed: %s", seed.URL, roster.Failure)
				return nil
			}

			company := roster.Company
			if seed.Name != "" {
				company = seed.Name
			}
			platform := string(reg.Match(seed.URL).Name())

			for _, l := range roster.Listings {
				ok, err := store.InsertListingIfNew(db, store.ListingInsert{
					Company:  company,
					Title:    l.Title,
					Location: l.Location,
					URL:      l.URL,
					Platform: platform,
					SourceID: store.SourceID(platform, l.URL),
				})
				if err != nil {
					log.Printf("[scan] seed=%q insert err=%v", seed.URL, err)
					continue
				}
				if ok {
					total.Add(1)
					if onNewListing != nil {
						onNewListing()
					}
				}
			}
			return nil
		})
	}

	err = g.Wait()
	return int(total.Load()), err
}
