package linkedin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract/util"

	"github.com/PuerkitoBio/goquery"
)

const marker = "linkedin.com/jobs"

// Extractor handles LinkedIn posting pages. Only descriptions are supported;
// LinkedIn postings belong to the network, not to a company board we can
// enumerate.
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

func (e *Extractor) Name() domain.Platform { return domain.PlatformLinkedIn }

func (e *Extractor) Match(url string) bool { return strings.Contains(url, marker) }

func (e *Extractor) Description(ctx context.Context, url string) (string, bool) {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		log.Printf("[ats:linkedin] description url=%q err=%v", url, err)
		return "", false
	}

	container := doc.Find("div.description__text").First()
	if container.Length() == 0 {
		container = util.FirstByClass(doc.Selection, "show-more-less-html__markup")
	}
	if container == nil || container.Length() == 0 {
		doc.Find("section[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			if strings.Contains(strings.ToLower(class), "description") {
				container = s
				return false
			}
			return true
		})
	}
	if container == nil || container.Length() == 0 {
		return "", false
	}
	if text := util.TextLines(container); text != "" {
		return text, true
	}
	return "", false
}

func (e *Extractor) CompanyJobs(ctx context.Context, url string) domain.Roster {
	// company rosters come from the employer's own board, found via discovery
	return domain.NewRoster("Unknown")
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
