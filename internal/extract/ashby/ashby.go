package ashby

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract/util"

	"github.com/PuerkitoBio/goquery"
)

const marker = "ashbyhq.com"

type Extractor struct {
	hc      *http.Client
	limiter *util.HostLimiter
	apiBase string
}

func New(limiter *util.HostLimiter) *Extractor {
	return &Extractor{
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		apiBase: "https://api.ashbyhq.com",
	}
}

func (e *Extractor) Name() domain.Platform { return domain.PlatformAshby }

func (e *Extractor) Match(url string) bool { return strings.Contains(url, marker) }

// Slug pulls the board slug from jobs.ashbyhq.com/<slug>/<job-id> URLs.
func Slug(url string) string { return util.SlugAfterHost(url, marker) }

func (e *Extractor) Description(ctx context.Context, url string) (string, bool) {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		log.Printf("[ats:ashby] description url=%q err=%v", url, err)
		return "", false
	}

	for _, sel := range []string{"div.ashby-job-posting-brief-info", "div#job-description", "main"} {
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
	Title    string `json:"title"`
	JobURL   string `json:"jobUrl"`
	Location string `json:"location"`
	IsRemote bool   `json:"isRemote"`
}

type boardResponse struct {
	OrganizationName string     `json:"organizationName"`
	Jobs             []boardJob `json:"jobs"`
}

func (e *Extractor) CompanyJobs(ctx context.Context, url string) domain.Roster {
	slug := Slug(url)
	if slug == "" {
		return domain.NewRoster("Unknown")
	}

	apiURL := fmt.Sprintf("%s/posting-api/job-board/%s", e.apiBase, slug)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)
	req.Header.Set("Accept", "application/json")

	if err := e.limiter.Wait(ctx, apiURL); err != nil {
		return domain.FailedRoster(slug, err.Error())
	}
	res, err := e.hc.Do(req)
	if err != nil {
		log.Printf("[ats:ashby] list slug=%q err=%v", slug, err)
		return domain.FailedRoster(slug, "request failed")
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Printf("[ats:ashby] list slug=%q status=%d", slug, res.StatusCode)
		return domain.FailedRoster(slug, fmt.Sprintf("status %d", res.StatusCode))
	}

	var br boardResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		log.Printf("[ats:ashby] list slug=%q decode err=%v", slug, err)
		return domain.FailedRoster(slug, "bad payload")
	}

	// board payload carries the real display name; slug is the fallback
	company := strings.TrimSpace(br.OrganizationName)
	if company == "" {
		company = util.DisplayName(slug)
	}

	roster := domain.NewRoster(company)
	for _, j := range br.Jobs {
		title := strings.TrimSpace(j.Title)
		if title == "" || j.JobURL == "" {
			continue
		}
		roster.Listings = append(roster.Listings, domain.JobListing{
			Title:    title,
			URL:      j.JobURL,
			Location: locationOf(j),
		})
	}
	return roster
}

func locationOf(j boardJob) string {
	loc := strings.TrimSpace(j.Location)
	if !j.IsRemote {
		return loc
	}
	if loc == "" {
		return "Remote"
	}
	return loc + " (Remote)"
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
