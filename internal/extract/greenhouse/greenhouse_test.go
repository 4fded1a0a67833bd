package greenhouse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/filter"
)

func TestMatch(t *testing.T) {
	e := New(nil)
	assert.True(t, e.Match("https://boards.greenhouse.io/acme/jobs/1"))
	assert.True(t, e.Match("https://job-boards.greenhouse.io/acme"))
	assert.False(t, e.Match("https://jobs.lever.co/acme"))
}

func TestCompanyJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/boards/acme/jobs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs":[
			{"title":"Backend Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/1","location":{"name":"Berlin"}},
			{"title":"Sales Lead","absolute_url":"https://boards.greenhouse.io/acme/jobs/2","location":{"name":"Remote"}},
			{"title":"","absolute_url":"https://boards.greenhouse.io/acme/jobs/3","location":{"name":""}}
		]}`))
	}))
	defer srv.Close()

	e := New(nil)
	e.apiBase = srv.URL

	roster := e.CompanyJobs(context.Background(), "https://boards.greenhouse.io/acme")
	assert.Equal(t, "Acme", roster.Company)
	assert.Empty(t, roster.Failure)
	require.Len(t, roster.Listings, 2) // untitled posting dropped
	assert.Equal(t, "Backend Engineer", roster.Listings[0].Title)
	assert.Equal(t, "Berlin", roster.Listings[0].Location)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", roster.Listings[0].URL)
}

func TestCompanyJobsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := New(nil)
	e.apiBase = srv.URL

	roster := e.CompanyJobs(context.Background(), "https://boards.greenhouse.io/acme")
	assert.Equal(t, "acme", roster.Company)
	assert.NotEmpty(t, roster.Failure)
	assert.Empty(t, roster.Listings)
	assert.NotNil(t, roster.Listings)
}

func TestCompanyJobsEmptyBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs":[]}`))
	}))
	defer srv.Close()

	e := New(nil)
	e.apiBase = srv.URL

	roster := e.CompanyJobs(context.Background(), "https://boards.greenhouse.io/acme")
	assert.Equal(t, "Acme", roster.Company)
	assert.Empty(t, roster.Failure) // empty board is not a failure
	assert.Empty(t, roster.Listings)
	assert.NotNil(t, roster.Listings)
}

func TestCompanyJobsNoSlug(t *testing.T) {
	e := New(nil)
	roster := e.CompanyJobs(context.Background(), "https://boards.greenhouse.io")
	assert.Equal(t, "Unknown", roster.Company)
	assert.Empty(t, roster.Listings)
}

// end-to-end shape of a discovery run: board lookup then policy filtering
func TestBoardThenFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs":[
			{"title":"Backend Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/1","location":{"name":"Remote"}},
			{"title":"Senior DevOps Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/2","location":{"name":"Remote"}},
			{"title":"iOS Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/3","location":{"name":"Remote"}}
		]}`))
	}))
	defer srv.Close()

	e := New(nil)
	e.apiBase = srv.URL

	roster := e.CompanyJobs(context.Background(), "https://boards.greenhouse.io/acme/jobs/1")
	require.Equal(t, "Acme", roster.Company)

	pol := filter.DefaultPolicy()
	var kept []string
	for _, l := range roster.Listings {
		if pol.IsEngineeringRole(l.Title) {
			kept = append(kept, l.Title)
		}
	}
	assert.Equal(t, []string{"Backend Engineer"}, kept)
}

func TestDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<div id="content"><p>We are hiring.</p><form><input name="email"></form></div>
		</body></html>`))
	}))
	defer srv.Close()

	e := New(nil)
	text, ok := e.Description(context.Background(), srv.URL+"/acme/jobs/1")
	require.True(t, ok)
	assert.Contains(t, text, "We are hiring.")
	assert.NotContains(t, text, "email")
}

func TestDescriptionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	e := New(nil)
	_, ok := e.Description(context.Background(), srv.URL+"/acme/jobs/1")
	assert.False(t, ok)
}
