package store

import (
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"
)

type ListingInsert struct {
	Company  string
	Title    string
	Location string
	URL      string
	Platform string
	SourceID string
}

// SourceID is the dedupe key for a posting: the platform plus the posting
// URL, hashed. URLs alone collide across platforms that proxy each other.
func SourceID(platform, url string) string {
	h := sha1.Sum([]byte(platform + "|" + url))
	return hex.EncodeToString(h[:])
}

func InsertListingIfNew(db *sql.DB, l ListingInsert) (added bool, err error) {
	// relies on unique index on source_id WHERE source_id != ''
	_, err = db.Exec(`
INSERT OR IGNORE INTO listings (company, title, location, url, platform, source_id, first_seen)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		l.Company, l.Title, l.Location, l.URL, l.Platform, l.SourceID, NowStamp(),
	)
	if err != nil {
		return false, fmt.Errorf("insert listing: %w", err)
	}

	// IGNORE makes RowsAffected unreliable across drivers; ask sqlite directly
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}
