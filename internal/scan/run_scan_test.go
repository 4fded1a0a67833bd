package scan

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract"
	"jobscout-engine/internal/store"
)

type boardStub struct {
	name    domain.Platform
	matches string
	rosters map[string]domain.Roster
}

func (s *boardStub) Name() domain.Platform { return s.name }
func (s *boardStub) Match(url string) bool {
	return s.matches == "" || strings.Contains(url, s.matches)
}
func (s *boardStub) Description(ctx context.Context, url string) (string, bool) { return "", false }
func (s *boardStub) CompanyJobs(ctx context.Context, url string) domain.Roster {
	return s.rosters[url]
}

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "scan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestRunOnce(t *testing.T) {
	db := openTestDB(t)

	stub := &boardStub{name: "stub", rosters: map[string]domain.Roster{
		"https://a.example/careers": {
			Company: "Board Name",
			Listings: []domain.JobListing{
				{Title: "Backend Engineer", URL: "https://a.example/jobs/1", Location: "Remote"},
				{Title: "Senior DevOps Engineer", URL: "https://a.example/jobs/2"},
			},
		},
		"https://b.example/careers": {
			Company:  "Globex",
			Listings: []domain.JobListing{{Title: "Frontend Engineer", URL: "https://b.example/jobs/9"}},
		},
	}}
	reg := extract.NewRegistryWith(stub)

	cfg := config.Default()
	cfg.Scan.Seeds = []config.Seed{
		{URL: "https://a.example/careers", Name: "Acme"}, // name overrides the board
		{URL: "https://b.example/careers"},
	}

	var notified atomic.Int64
	added, err := RunOnce(context.Background(), db.Pool, cfg, reg, func() { notified.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, 2, added) // DevOps title filtered out
	assert.Equal(t, int64(2), notified.Load())

	got, err := store.ListListings(context.Background(), db.Pool, store.ListListingsOpts{Sort: "company"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Company)
	assert.Equal(t, "Globex", got[1].Company)
	assert.Equal(t, "stub", got[0].Platform)

	// second run finds nothing new
	added, err = RunOnce(context.Background(), db.Pool, cfg, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestRunOnceSkipsFailedBoards(t *testing.T) {
	db := openTestDB(t)

	stub := &boardStub{name: "stub", rosters: map[string]domain.Roster{
		"https://down.example/careers": domain.FailedRoster("down", "status 500"),
	}}
	reg := extract.NewRegistryWith(stub)

	cfg := config.Default()
	cfg.Scan.Seeds = []config.Seed{{URL: "https://down.example/careers"}}

	added, err := RunOnce(context.Background(), db.Pool, cfg, reg, nil)
	require.NoError(t, err)
	assert.Zero(t, added)

	got, err := store.ListListings(context.Background(), db.Pool, store.ListListingsOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
