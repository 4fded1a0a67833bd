package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestInsertListingDedupe(t *testing.T) {
	db := openTestDB(t)

	l := ListingInsert{
		Company:  "Acme",
		Title:    "Backend Engineer",
		Location: "Remote",
		URL:      "https://jobs.lever.co/acme/1",
		Platform: "lever",
	}
	l.SourceID = SourceID(l.Platform, l.URL)

	added, err := InsertListingIfNew(db.Pool, l)
	require.NoError(t, err)
	assert.True(t, added)

	// same posting again is a no-op
	added, err = InsertListingIfNew(db.Pool, l)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := ListListings(context.Background(), db.Pool, ListListingsOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Backend Engineer", got[0].Title)
	assert.Equal(t, "lever", got[0].Platform)
	assert.NotEmpty(t, got[0].FirstSeen)
}

func TestSourceIDDistinguishesPlatforms(t *testing.T) {
	assert.NotEqual(t, SourceID("lever", "https://x/1"), SourceID("greenhouse", "https://x/1"))
	assert.Equal(t, SourceID("lever", "https://x/1"), SourceID("lever", "https://x/1"))
}

func TestListListingsByCompany(t *testing.T) {
	db := openTestDB(t)

	for i, c := range []string{"Acme", "Acme", "Globex"} {
		url := "https://x/" + string(rune('a'+i))
		_, err := InsertListingIfNew(db.Pool, ListingInsert{
			Company: c, Title: "Engineer", URL: url,
			Platform: "generic", SourceID: SourceID("generic", url),
		})
		require.NoError(t, err)
	}

	got, err := ListListings(context.Background(), db.Pool, ListListingsOpts{Company: "Acme"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteListing(t *testing.T) {
	db := openTestDB(t)

	_, err := InsertListingIfNew(db.Pool, ListingInsert{
		Company: "Acme", Title: "Engineer", URL: "https://x/1",
		Platform: "generic", SourceID: SourceID("generic", "https://x/1"),
	})
	require.NoError(t, err)

	got, err := ListListings(context.Background(), db.Pool, ListListingsOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	ok, err := DeleteListing(context.Background(), db.Pool, got[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DeleteListing(context.Background(), db.Pool, got[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCareersURLCache(t *testing.T) {
	db := openTestDB(t)

	url, platform, err := GetCareersURL(context.Background(), db.Pool, "Acme")
	require.NoError(t, err)
	assert.Empty(t, url)

	require.NoError(t, UpsertCareersURL(context.Background(), db.Pool, "Acme", "https://acme.com/careers", "generic"))
	// company keys are case-insensitive
	url, platform, err = GetCareersURL(context.Background(), db.Pool, "  ACME ")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com/careers", url)
	assert.Equal(t, "generic", platform)

	require.NoError(t, UpsertCareersURL(context.Background(), db.Pool, "acme", "https://jobs.lever.co/acme", "lever"))
	url, platform, err = GetCareersURL(context.Background(), db.Pool, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.lever.co/acme", url)
	assert.Equal(t, "lever", platform)
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Migrate(db.Pool))
}
