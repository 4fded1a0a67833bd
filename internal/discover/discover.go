package discover

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract"
	"jobscout-engine/internal/extract/util"
)

// atsMarker pairs a platform with the URL fragment that identifies it when
// the structured extractors haven't already claimed the URL.
type atsMarker struct {
	platform domain.Platform
	fragment string
}

// checked in order; more specific hosts first
var atsMarkers = []atsMarker{
	{domain.PlatformAshby, "ashbyhq"},
	{domain.PlatformGreenhouse, "greenhouse"},
	{domain.PlatformLever, "lever.co"},
	{domain.PlatformWorkday, "myworkdayjobs"},
	{domain.PlatformRippling, "rippling"},
	{domain.PlatformLinkedIn, "linkedin"},
}

var careersBodyWords = []string{"job", "career", "position", "opening"}

// Finder locates a company's careers page from its name alone by probing the
// usual URL shapes.
type Finder struct {
	hc       *http.Client
	registry *extract.Registry

	// candidates is swappable so tests can point probes at a local server.
	candidates func(company string) []string
}

func NewFinder(registry *extract.Registry) *Finder {
	return &Finder{
		hc:         &http.Client{Timeout: 5 * time.Second},
		registry:   registry,
		candidates: CandidateURLs,
	}
}

// CandidateURLs enumerates the careers-page URL shapes companies actually
// use, most common first. The name is lowercased with spaces removed.
func CandidateURLs(company string) []string {
	n := strings.ToLower(strings.ReplaceAll(company, " ", ""))
	if n == "" {
		return nil
	}
	return []string{
		fmt.Sprintf("https://%s.com/careers", n),
		fmt.Sprintf("https://www.%s.com/careers", n),
		fmt.Sprintf("https://%s.com/jobs", n),
		fmt.Sprintf("https://careers.%s.com", n),
		fmt.Sprintf("https://jobs.%s.com", n),
	}
}

// SearchCareersURL probes the candidate URLs for company and returns the
// first that responds 200 and reads like a careers page. The returned URL is
// the final one after redirects.
func (f *Finder) SearchCareersURL(ctx context.Context, company string) (string, bool) {
	for _, candidate := range f.candidates(company) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", util.UserAgent)

		res, err := f.hc.Do(req)
		if err != nil {
			continue
		}
		body, err := io.ReadAll(io.LimitReader(res.Body, 512<<10))
		res.Body.Close()
		if err != nil || res.StatusCode != http.StatusOK {
			continue
		}
		if LooksLikeCareersPage(string(body)) {
			final := candidate
			if res.Request != nil && res.Request.URL != nil {
				final = res.Request.URL.String()
			}
			log.Printf("[discover] company=%q careers=%q", company, final)
			return final, true
		}
	}
	return "", false
}

// LooksLikeCareersPage is a cheap body check: any hiring keyword counts.
func LooksLikeCareersPage(body string) bool {
	low := strings.ToLower(body)
	for _, w := range careersBodyWords {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

// DetectATS names the platform behind a careers URL: the registry's
// structured matchers first, then the marker table for URLs that mention a
// platform without matching its canonical host shape.
func (f *Finder) DetectATS(url string) (domain.Platform, bool) {
	if p, ok := f.registry.StructuredPlatform(url); ok {
		return p, true
	}
	low := strings.ToLower(url)
	for _, m := range atsMarkers {
		if strings.Contains(low, m.fragment) {
			return m.platform, true
		}
	}
	return "", false
}
