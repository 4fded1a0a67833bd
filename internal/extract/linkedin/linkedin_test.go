package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	e := New(nil)
	assert.True(t, e.Match("https://www.linkedin.com/jobs/view/123"))
	assert.False(t, e.Match("https://www.linkedin.com/in/someone"))
}

func TestDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<div class="top-card">Acme hiring</div>
			<div class="description__text">We need a backend engineer.</div>
		</body></html>`))
	}))
	defer srv.Close()

	e := New(nil)
	text, ok := e.Description(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Contains(t, text, "We need a backend engineer.")
}

func TestDescriptionMarkupFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<div class="show-more-less-html__markup relative">Role details here.</div>
		</body></html>`))
	}))
	defer srv.Close()

	e := New(nil)
	text, ok := e.Description(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Contains(t, text, "Role details here.")
}

func TestCompanyJobsAlwaysEmpty(t *testing.T) {
	e := New(nil)
	roster := e.CompanyJobs(context.Background(), "https://www.linkedin.com/jobs/view/123")
	assert.Equal(t, "Unknown", roster.Company)
	assert.Empty(t, roster.Listings)
	assert.NotNil(t, roster.Listings)
	assert.Empty(t, roster.Failure)
}
