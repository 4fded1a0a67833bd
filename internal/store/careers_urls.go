package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// GetCareersURL returns the cached careers page for a company, or "" when
// the company has not been discovered yet.
func GetCareersURL(ctx context.Context, db *sql.DB, company string) (url, platform string, err error) {
	company = normalizeCompanyKey(company)
	if company == "" {
		return "", "", nil
	}

	err = db.QueryRowContext(ctx,
		`SELECT url, platform FROM careers_urls WHERE company = ? LIMIT 1;`,
		company,
	).Scan(&url, &platform)

	if err == sql.ErrNoRows {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(url), platform, nil
}

func UpsertCareersURL(ctx context.Context, db *sql.DB, company, url, platform string) error {
	company = normalizeCompanyKey(company)
	url = strings.TrimSpace(url)

	if company == "" || url == "" {
		return nil
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO careers_urls(company, url, platform, fetched_at)
VALUES(?,?,?,?)
ON CONFLICT(company) DO UPDATE SET
  url = excluded.url,
  platform = excluded.platform,
  fetched_at = excluded.fetched_at;
`, company, url, platform, time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
