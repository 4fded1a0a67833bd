package lever

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

const marker = "jobs.lever.co"

type Extractor struct {
	hc      *http.Client
	limiter *util.HostLimiter
	apiBase string
}

func New(limiter *util.HostLimiter) *Extractor {
	return &Extractor{
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		apiBase: "https://api.lever.co",
	}
}

func (e *Extractor) Name() domain.Platform { return domain.PlatformLever }

func (e *Extractor) Match(url string) bool { return strings.Contains(url, marker) }

// Slug pulls the company slug from jobs.lever.co/<slug>/<posting-id> URLs.
func Slug(url string) string { return util.SlugAfterHost(url, marker) }

func (e *Extractor) Description(ctx context.Context, url string) (string, bool) {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		log.Printf("[ats:lever] description url=%q err=%v", url, err)
		return "", false
	}

	for _, sel := range []string{"div.posting-page", "div.posting", "div.content"} {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		container.Find("div.application").Remove()
		container.Find("form").Remove()
		if text := util.TextLines(container); text != "" {
			return text, true
		}
	}
	return "", false
}

type posting struct {
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
}

func (e *Extractor) CompanyJobs(ctx context.Context, url string) domain.Roster {
	slug := Slug(url)
	if slug == "" {
		return domain.NewRoster("Unknown")
	}

	apiURL := fmt.Sprintf("%s/v0/postings/%s?mode=json", e.apiBase, slug)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)
	req.Header.Set("Accept", "application/json")

	if err := e.limiter.Wait(ctx, apiURL); err != nil {
		return domain.FailedRoster(slug, err.Error())
	}
	res, err := e.hc.Do(req)
	if err != nil {
		log.Printf("[ats:lever] list slug=%q err=%v", slug, err)
		return domain.FailedRoster(slug, "request failed")
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Printf("[ats:lever] list slug=%q status=%d", slug, res.StatusCode)
		return domain.FailedRoster(slug, fmt.Sprintf("status %d", res.StatusCode))
	}

	var postings []posting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		log.Printf("[ats:lever] list slug=%q decode err=%v", slug, err)
		return domain.FailedRoster(slug, "bad payload")
	}

	roster := domain.NewRoster(util.DisplayName(slug))
	for _, p := range postings {
		title := strings.TrimSpace(p.Text)
		if title == "" || p.HostedURL == "" {
			continue
		}
		roster.Listings = append(roster.Listings, domain.JobListing{
			Title:    title,
			URL:      p.HostedURL,
			Location: strings.TrimSpace(p.Categories.Location),
		})
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
