package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Listing is a persisted job posting as seen by a scan run.
type Listing struct {
	ID        int64  `json:"id"`
	Company   string `json:"company"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	URL       string `json:"url"`
	Platform  string `json:"platform"`
	FirstSeen string `json:"firstSeen"`
}

type ListListingsOpts struct {
	Sort    string // first_seen | company | title
	Company string
	Limit   int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS listings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL,
  platform TEXT NOT NULL DEFAULT '',
  source_id TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS careers_urls (
  company TEXT PRIMARY KEY,
  url TEXT NOT NULL,
  platform TEXT NOT NULL DEFAULT '',
  fetched_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_listings_first_seen
ON listings(first_seen);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_listings_company
ON listings(company);
`); err != nil {
		return err
	}

	// the same posting URL can show up on every scan; only the first wins
	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_listings_source_id
ON listings(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func ListListings(ctx context.Context, db *sql.DB, opts ListListingsOpts) ([]Listing, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol, order := "first_seen", "DESC"
	switch opts.Sort {
	case "company":
		sortCol, order = "company", "ASC"
	case "title":
		sortCol, order = "title", "ASC"
	}

	where := ""
	args := []any{}
	if opts.Company != "" {
		where = "WHERE company = ?"
		args = append(args, opts.Company)
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
SELECT id, company, title, location, url, platform, first_seen
FROM listings
%s
ORDER BY %s %s
LIMIT ?;
`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Company, &l.Title, &l.Location, &l.URL, &l.Platform, &l.FirstSeen); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func DeleteListing(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete listing: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func CleanupOldListings(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM listings
WHERE first_seen < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old listings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// NowStamp is the canonical first_seen format.
func NowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
