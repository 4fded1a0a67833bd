package generic

import (
	"context"
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
	// minimum collapsed text length for a block to count as a description
	substantialLen = 200
	// higher bar for the last-resort largest-block pass
	lastResortLen = 500
	// a candidate block with more nested blocks than this is a page shell
	maxNestedBlocks = 10
)

// class fragments that mark chrome rather than content
var noiseClassWords = []string{
	"nav", "menu", "sidebar", "footer", "header",
	"cookie", "banner", "modal", "popup", "ad",
}

// class/id fragments tried in order, most specific first
var classPatterns = []string{
	"job-description", "job-content", "job-detail", "job-posting",
	"position-description", "role-description", "description",
	"posting", "job-body", "content-main", "post-content",
	"vacancy-description",
}

// path segments that mark the listing section of a careers site URL
var pathKeywords = []string{
	"position", "job", "career", "opening", "opportunity", "role", "vacancy",
}

// listing paths probed off the site root when the input URL gives no hint
var probePaths = []string{"/positions/", "/jobs/", "/careers/", "/opportunities/"}

var skipTitles = map[string]bool{
	"jobs":     true,
	"careers":  true,
	"all jobs": true,
	"view all": true,
	"more":     true,
}

// Extractor is the catch-all for career pages on no recognized platform. It
// works purely off page structure, so everything here is heuristic.
type Extractor struct {
	hc      *http.Client
	probe   *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Extractor {
	return &Extractor{
		hc:      &http.Client{Timeout: 10 * time.Second},
		probe:   &http.Client{Timeout: 5 * time.Second},
		limiter: limiter,
	}
}

func (e *Extractor) Name() domain.Platform { return domain.PlatformGeneric }

// Match is true for any URL; the registry keeps this extractor last.
func (e *Extractor) Match(url string) bool { return true }

// Description runs a cascade over the cleaned document: semantic containers,
// then known class/id patterns, then content-ish blocks by size.
func (e *Extractor) Description(ctx context.Context, url string) (string, bool) {
	doc, err := e.getDoc(ctx, url)
	if err != nil {
		log.Printf("[ats:generic] description url=%q err=%v", url, err)
		return "", false
	}
	removeNoise(doc)

	for _, try := range []func(*goquery.Document) *goquery.Selection{
		trySemanticTags,
		tryClassPatterns,
		tryMainContent,
		tryLargestBlock,
	} {
		if sel := try(doc); sel != nil {
			if text := util.TextLines(sel); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

func removeNoise(doc *goquery.Document) {
	doc.Find("script, style, nav, header, footer, iframe, noscript").Remove()
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class := strings.ToLower(s.AttrOr("class", ""))
		for _, w := range noiseClassWords {
			if strings.Contains(class, w) {
				s.Remove()
				return
			}
		}
	})
}

func trySemanticTags(doc *goquery.Document) *goquery.Selection {
	for _, tag := range []string{"article", "main"} {
		sel := doc.Find(tag).First()
		if sel.Length() > 0 && util.FlatLen(sel) > substantialLen {
			return sel
		}
	}
	return nil
}

func tryClassPatterns(doc *goquery.Document) *goquery.Selection {
	for _, pat := range classPatterns {
		if sel := util.FirstByClass(doc.Selection, pat); sel != nil && util.FlatLen(sel) > substantialLen {
			return sel
		}
		if sel := util.FirstByID(doc.Selection, pat); sel != nil && util.FlatLen(sel) > substantialLen {
			return sel
		}
	}
	return nil
}

func tryMainContent(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := substantialLen
	doc.Find("div[class], section[class]").Each(func(_ int, s *goquery.Selection) {
		class := strings.ToLower(s.AttrOr("class", ""))
		if !strings.Contains(class, "content") && !strings.Contains(class, "container") && !strings.Contains(class, "main") {
			return
		}
		if l := util.FlatLen(s); l > bestLen {
			best, bestLen = s, l
		}
	})
	return best
}

func tryLargestBlock(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := lastResortLen
	doc.Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		if s.Find("div, section").Length() > maxNestedBlocks {
			return
		}
		if l := util.FlatLen(s); l > bestLen {
			best, bestLen = s, l
		}
	})
	return best
}

// CompanyJobs locates the listing page for the site behind url, names the
// company from page metadata, and harvests links that look like individual
// postings.
func (e *Extractor) CompanyJobs(ctx context.Context, rawURL string) domain.Roster {
	listURL := e.findListingPage(ctx, rawURL)
	if listURL == "" {
		// no listing section anywhere on the site; empty, not failed
		return domain.NewRoster(util.DisplayName(domainSlug(rawURL)))
	}

	doc, err := e.getDoc(ctx, listURL)
	if err != nil {
		log.Printf("[ats:generic] list url=%q err=%v", listURL, err)
		return domain.FailedRoster(util.DisplayName(domainSlug(rawURL)), "request failed")
	}

	roster := domain.NewRoster(companyName(doc, rawURL))
	roster.Listings = harvestListings(doc, listURL)
	return roster
}

// findListingPage truncates the URL path at the first job-ish segment, so a
// deep posting URL folds back to its listing section. When the path has no
// such segment the common listing paths are probed off the site root. Returns
// "" when nothing on the site looks like a listing page.
func (e *Extractor) findListingPage(ctx context.Context, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segs {
		low := strings.ToLower(seg)
		for _, kw := range pathKeywords {
			if strings.Contains(low, kw) {
				u.Path = "/" + strings.Join(segs[:i+1], "/")
				u.RawQuery = ""
				u.Fragment = ""
				return u.String()
			}
		}
	}

	root := u.Scheme + "://" + u.Host
	for _, p := range probePaths {
		candidate := root + p
		if err := e.limiter.Wait(ctx, candidate); err != nil {
			return ""
		}
		req, _ := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
		req.Header.Set("User-Agent", util.UserAgent)
		res, err := e.probe.Do(req)
		if err != nil {
			continue
		}
		res.Body.Close()
		if res.StatusCode == http.StatusOK {
			return candidate
		}
	}
	return ""
}

// companyName prefers og:site_name, then the page title with common
// careers-page suffixes stripped, then the domain itself.
func companyName(doc *goquery.Document, rawURL string) string {
	if v, ok := doc.Find("meta[property='og:site_name']").First().Attr("content"); ok {
		if name := util.CleanText(v); name != "" {
			return name
		}
	}

	// the company may sit on either side of the separator; page labels
	// are skipped by exact match so a name like "Acme Careers" survives
	title := util.CleanText(doc.Find("title").First().Text())
	for _, sep := range []string{" - ", " | ", " at "} {
		if !strings.Contains(title, sep) {
			continue
		}
		for _, part := range strings.Split(title, sep) {
			name := util.CleanText(part)
			switch strings.ToLower(name) {
			case "", "careers", "jobs", "positions":
			default:
				return name
			}
		}
	}

	return util.DisplayName(domainSlug(rawURL))
}

// domainSlug is the registrable-name part of the URL's host, e.g.
// "acme" for careers.acme.com.
func domainSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return parts[0]
}

func harvestListings(doc *goquery.Document, base string) []domain.JobListing {
	baseU, err := url.Parse(base)
	if err != nil {
		baseU = nil
	}

	var out []domain.JobListing
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		abs := absoluteURL(baseU, href)
		if abs == "" || !looksLikeJobURL(abs) || seen[abs] {
			return
		}

		title := util.CleanText(a.Text())
		if len(title) < 3 || skipTitles[strings.ToLower(title)] {
			return
		}

		seen[abs] = true
		out = append(out, domain.JobListing{
			Title:    title,
			URL:      abs,
			Location: locationNear(a),
		})
	})
	return out
}

// looksLikeJobURL wants a job-ish keyword in the path plus enough path depth
// that the link points at one posting, not the listing itself. The last
// segment carrying digits or separators is the posting-id shape every board
// generator produces.
func looksLikeJobURL(abs string) bool {
	u, err := url.Parse(abs)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)

	matched := false
	for _, kw := range pathKeywords {
		if strings.Contains(path, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 {
		return false
	}
	last := segs[len(segs)-1]
	return strings.ContainsAny(last, "0123456789") ||
		strings.Contains(last, "-") || strings.Contains(last, "_")
}

// locationNear looks for a location hint inside the link's direct parent
// only; searching higher up would bleed locations across listings.
func locationNear(a *goquery.Selection) string {
	parent := a.Parent()
	if loc := util.FirstByClass(parent, "location"); loc != nil {
		if t := util.CleanText(loc.Text()); t != "" {
			return t
		}
	}

	var found string
	parent.Find("span, div, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := util.CleanText(s.Text())
		low := strings.ToLower(t)
		if t != "" && len(t) < 80 &&
			(strings.Contains(low, "remote") || strings.Contains(low, "hybrid") ||
				strings.Contains(low, "onsite") || strings.Contains(low, "office")) {
			found = t
			return false
		}
		return true
	})
	return found
}

func absoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	ref.Fragment = ""
	return ref.String()
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
