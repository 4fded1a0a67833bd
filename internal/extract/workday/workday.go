package workday

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract/util"

	"github.com/PuerkitoBio/goquery"
)

var (
	slugRe   = regexp.MustCompile(`([^./]+)\.wd\d+\.myworkdayjobs\.com`)
	boardRe  = regexp.MustCompile(`(https?://[^./]+\.wd\d+\.myworkdayjobs\.com/[^/?#]+)`)
	originRe = regexp.MustCompile(`https?://[^/]+`)
)

type Extractor struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Extractor {
	return &Extractor{
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
	}
}

func (e *Extractor) Name() domain.Platform { return domain.PlatformWorkday }

func (e *Extractor) Match(url string) bool { return strings.Contains(url, "myworkdayjobs.com") }

// Slug pulls the tenant from <tenant>.wd<n>.myworkdayjobs.com hosts.
func Slug(url string) string {
	if m := slugRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

func (e *Extractor) Description(ctx context.Context, url string) (string, bool) {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		log.Printf("[ats:workday] description url=%q err=%v", url, err)
		return "", false
	}

	selectors := []string{
		"div[data-automation-id='jobPostingDescription']",
		"div.jobDescription",
		"div[aria-label='Job Description']",
	}
	for _, sel := range selectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		if text := util.TextLines(container); text != "" {
			return text, true
		}
	}
	return "", false
}

// CompanyJobs scrapes the server-rendered board page. Workday has no public
// JSON listing endpoint per tenant, so this only sees the first page of
// results.
func (e *Extractor) CompanyJobs(ctx context.Context, rawURL string) domain.Roster {
	slug := Slug(rawURL)
	if slug == "" {
		return domain.NewRoster("Unknown")
	}

	board := boardRe.FindString(rawURL)
	if board == "" {
		log.Printf("[ats:workday] list slug=%q no board path in url=%q", slug, rawURL)
		return domain.FailedRoster(slug, "no board path")
	}
	origin := originRe.FindString(board)

	doc, err := e.getDoc(ctx, board)
	if err != nil {
		log.Printf("[ats:workday] list slug=%q err=%v", slug, err)
		return domain.FailedRoster(slug, "request failed")
	}

	roster := domain.NewRoster(util.DisplayName(slug))
	doc.Find("li[data-automation-id='jobPostingItem']").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a[data-automation-id='jobTitle']").First()
		title := util.CleanText(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = origin + href
		}
		roster.Listings = append(roster.Listings, domain.JobListing{
			Title:    title,
			URL:      href,
			Location: util.CleanText(item.Find("dd[data-automation-id='location']").First().Text()),
		})
	})
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
