package rippling

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	marker    = "ats.rippling.com"
	boardBase = "https://ats.rippling.com"
	pageSize  = 100
	maxPages  = 50 // upstream is supposed to stop; don't trust it
)

type Extractor struct {
	hc      *http.Client
	limiter *util.HostLimiter
	apiBase string
}

func New(limiter *util.HostLimiter) *Extractor {
	return &Extractor{
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		apiBase: "https://api.rippling.com",
	}
}

func (e *Extractor) Name() domain.Platform { return domain.PlatformRippling }

func (e *Extractor) Match(url string) bool { return strings.Contains(url, marker) }

// Slug pulls the board slug from ats.rippling.com/<slug>/jobs/<id> URLs.
func Slug(url string) string { return util.SlugAfterHost(url, marker) }

func (e *Extractor) Description(ctx context.Context, url string) (string, bool) {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		log.Printf("[ats:rippling] description url=%q err=%v", url, err)
		return "", false
	}

	for _, sel := range []string{"div.job-description", "div[data-testid='job-description']", "main"} {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		container.Find("form").Remove()
		if text := util.TextLines(container); text != "" {
			return text, true
		}
	}
	return "", false
}

type boardJob struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
}

type jobsPage struct {
	Jobs       []boardJob `json:"jobs"`
	NextCursor string     `json:"nextCursor"`
}

// CompanyJobs drains the board's cursor-paginated jobs API. Pages are fetched
// sequentially; any failure mid-way discards the partial roster, matching the
// all-or-nothing contract of the other platforms.
func (e *Extractor) CompanyJobs(ctx context.Context, rawURL string) domain.Roster {
	slug := Slug(rawURL)
	if slug == "" {
		return domain.NewRoster("Unknown")
	}

	base := fmt.Sprintf("%s/platform/api/ats/v1/board/%s/jobs", e.apiBase, slug)
	roster := domain.NewRoster(util.DisplayName(slug))
	cursor := ""

	for page := 0; ; page++ {
		if page == maxPages {
			log.Printf("[ats:rippling] list slug=%q hit page cap (%d), stopping", slug, maxPages)
			break
		}

		q := url.Values{}
		q.Set("limit", fmt.Sprint(pageSize))
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		pageURL := base + "?" + q.Encode()

		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		req.Header.Set("User-Agent", util.UserAgent)
		req.Header.Set("Accept", "application/json")

		if err := e.limiter.Wait(ctx, pageURL); err != nil {
			return domain.FailedRoster(slug, err.Error())
		}
		res, err := e.hc.Do(req)
		if err != nil {
			log.Printf("[ats:rippling] list slug=%q page=%d err=%v", slug, page, err)
			return domain.FailedRoster(slug, "request failed")
		}
		if res.StatusCode >= 400 {
			res.Body.Close()
			log.Printf("[ats:rippling] list slug=%q page=%d status=%d", slug, page, res.StatusCode)
			return domain.FailedRoster(slug, fmt.Sprintf("status %d", res.StatusCode))
		}

		var pg jobsPage
		err = json.NewDecoder(res.Body).Decode(&pg)
		res.Body.Close()
		if err != nil {
			log.Printf("[ats:rippling] list slug=%q page=%d decode err=%v", slug, page, err)
			return domain.FailedRoster(slug, "bad payload")
		}

		for _, j := range pg.Jobs {
			title := strings.TrimSpace(j.Title)
			if title == "" || j.ID == "" {
				continue
			}
			roster.Listings = append(roster.Listings, domain.JobListing{
				Title:    title,
				URL:      fmt.Sprintf("%s/%s/jobs/%s", boardBase, slug, j.ID),
				Location: strings.TrimSpace(j.Location.Name),
			})
		}

		cursor = pg.NextCursor
		if cursor == "" {
			break
		}
	}
	return roster
}

func (e *Extractor) getDoc(ctx context.Context, url string) (*goquery.Document, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	req.Header.Set("User-Agent", util.UserAgent)
	if err := e.limiter.Wait(ctx, url); err != nil {
		return nil, err
	}
	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}
