package generic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func filler(n int) string {
	return strings.Repeat("lorem ipsum dolor sit amet ", n)
}

func TestDescriptionSemanticBeatsClass(t *testing.T) {
	// both an <article> and a job-description div qualify; the semantic
	// pass runs first so it must win
	srv := serve(t, `<html><body>
		<article>FROM_ARTICLE `+filler(20)+`</article>
		<div class="job-description">FROM_CLASS `+filler(20)+`</div>
	</body></html>`)

	e := New(nil)
	text, ok := e.Description(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Contains(t, text, "FROM_ARTICLE")
	assert.NotContains(t, text, "FROM_CLASS")
}

func TestDescriptionClassPattern(t *testing.T) {
	srv := serve(t, `<html><body>
		<div class="job-description">THE_ROLE `+filler(20)+`</div>
	</body></html>`)

	e := New(nil)
	text, ok := e.Description(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Contains(t, text, "THE_ROLE")
}

func TestDescriptionNoiseRemoved(t *testing.T) {
	srv := serve(t, `<html><body>
		<nav>NAV_TEXT</nav>
		<div class="cookie-banner">COOKIE_TEXT</div>
		<article>CONTENT `+filler(20)+`</article>
		<footer>FOOTER_TEXT</footer>
	</body></html>`)

	e := New(nil)
	text, ok := e.Description(context.Background(), srv.URL)
	require.True(t, ok)
	assert.NotContains(t, text, "NAV_TEXT")
	assert.NotContains(t, text, "COOKIE_TEXT")
	assert.NotContains(t, text, "FOOTER_TEXT")
}

func TestDescriptionShortContentRejected(t *testing.T) {
	srv := serve(t, `<html><body><article>too short</article></body></html>`)

	e := New(nil)
	_, ok := e.Description(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestCompanyJobsHarvest(t *testing.T) {
	srv := serve(t, `<html><head>
		<meta property="og:site_name" content="Acme">
		<title>Careers - Acme</title>
	</head><body>
		<ul>
			<li><a href="/careers/backend-engineer-123">Backend Engineer</a>
				<span class="job-location">Berlin</span></li>
			<li><a href="/careers/frontend-engineer-456">Frontend Engineer</a>
				<span>Remote friendly</span></li>
			<li><a href="/careers/">All Jobs</a></li>
			<li><a href="/about">About us</a></li>
			<li><a href="/careers/backend-engineer-123">Backend Engineer</a></li>
		</ul>
	</body></html>`)

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/careers")
	assert.Equal(t, "Acme", roster.Company)
	require.Len(t, roster.Listings, 2) // nav links and the duplicate dropped
	assert.Equal(t, "Backend Engineer", roster.Listings[0].Title)
	assert.Equal(t, srv.URL+"/careers/backend-engineer-123", roster.Listings[0].URL)
	assert.Equal(t, "Berlin", roster.Listings[0].Location)
	assert.Equal(t, "Remote friendly", roster.Listings[1].Location)
}

func TestCompanyNameFromTitle(t *testing.T) {
	srv := serve(t, `<html><head>
		<title>Acme Robotics | Open Positions</title>
	</head><body></body></html>`)

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/jobs")
	assert.Equal(t, "Acme Robotics", roster.Company)
}

func TestCompanyNameAfterSeparator(t *testing.T) {
	// the company can sit on either side of the separator
	srv := serve(t, `<html><head>
		<title>Careers at Acme</title>
	</head><body></body></html>`)

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/jobs")
	assert.Equal(t, "Acme", roster.Company)
}

func TestCompanyNameContainingPageLabelKept(t *testing.T) {
	// only an exact "careers"/"jobs"/"positions" part is a page label
	srv := serve(t, `<html><head>
		<title>Acme Careers | Jobs</title>
	</head><body></body></html>`)

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/jobs")
	assert.Equal(t, "Acme Careers", roster.Company)
}

func TestCompanyNameRejectsCareersTitle(t *testing.T) {
	// "Careers" before the separator is the page, not the company
	srv := serve(t, `<html><head>
		<title>Careers - we are hiring</title>
	</head><body></body></html>`)

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/jobs")
	assert.NotEqual(t, "Careers", roster.Company)
}

func TestFindListingPageTruncatesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	e := New(nil)
	// a deep posting URL folds back to its careers section
	e.CompanyJobs(context.Background(), srv.URL+"/careers/backend-engineer-123")
	assert.Equal(t, "/careers", gotPath)
}

func TestCompanyJobsNoListingPage(t *testing.T) {
	// no job-ish path segment and every probe path misses: the site is
	// never harvested, and the empty roster is not a failure
	var gets int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/about")
	assert.Empty(t, roster.Failure)
	assert.Empty(t, roster.Listings)
	assert.NotNil(t, roster.Listings)
	assert.Zero(t, gets)
}

func TestCompanyJobsBadURLCompany(t *testing.T) {
	// no host means no domain slug; the company still gets the default name
	e := New(nil)
	roster := e.CompanyJobs(context.Background(), "not a url at all")
	assert.Equal(t, "Unknown", roster.Company)
	assert.NotEmpty(t, roster.Failure)
}

func TestLooksLikeJobURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://acme.com/careers/backend-engineer-123", true},
		{"https://acme.com/jobs/42", true},
		{"https://acme.com/positions/senior_backend", true},
		{"https://acme.com/careers", false},       // no posting segment
		{"https://acme.com/about/team", false},    // no keyword
		{"https://acme.com/careers/apply", false}, // last segment has no id shape
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeJobURL(tt.url))
		})
	}
}

func TestCompanyJobsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	e := New(nil)
	roster := e.CompanyJobs(context.Background(), srv.URL+"/careers")
	assert.NotEmpty(t, roster.Failure)
	assert.Empty(t, roster.Listings)
	assert.NotNil(t, roster.Listings)
}
