package extract

import (
	"context"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/extract/ashby"
	"jobscout-engine/internal/extract/generic"
	"jobscout-engine/internal/extract/greenhouse"
	"jobscout-engine/internal/extract/lever"
	"jobscout-engine/internal/extract/linkedin"
	"jobscout-engine/internal/extract/rippling"
	"jobscout-engine/internal/extract/types"
	"jobscout-engine/internal/extract/util"
	"jobscout-engine/internal/extract/workday"
	"jobscout-engine/internal/filter"
)

// Registry dispatches URLs to platform extractors in a fixed order. The last
// entry is the catch-all generic extractor, so Match never misses.
type Registry struct {
	extractors []types.Extractor
}

func NewRegistry() *Registry {
	limiter := util.NewHostLimiter(2.0, 4)
	return NewRegistryWith(
		greenhouse.New(limiter),
		lever.New(limiter),
		ashby.New(limiter),
		rippling.New(limiter),
		workday.New(limiter),
		linkedin.New(limiter),
		generic.New(limiter),
	)
}

// NewRegistryWith builds a registry over an explicit extractor list. The last
// extractor must match every URL.
func NewRegistryWith(extractors ...types.Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Match returns the first extractor whose predicate accepts the URL. The
// generic tail guarantees a non-nil result.
func (r *Registry) Match(url string) types.Extractor {
	for _, e := range r.extractors {
		if e.Match(url) {
			return e
		}
	}
	return r.extractors[len(r.extractors)-1]
}

// StructuredPlatform reports which structured platform recognizes the URL,
// skipping the generic tail.
func (r *Registry) StructuredPlatform(url string) (domain.Platform, bool) {
	for _, e := range r.extractors[:len(r.extractors)-1] {
		if e.Match(url) {
			return e.Name(), true
		}
	}
	return "", false
}

func (r *Registry) Description(ctx context.Context, url string) (string, bool) {
	return r.Match(url).Description(ctx, url)
}

func (r *Registry) CompanyJobs(ctx context.Context, url string) domain.Roster {
	return r.Match(url).CompanyJobs(ctx, url)
}

// EngineeringJobs is CompanyJobs narrowed to titles the policy accepts.
func (r *Registry) EngineeringJobs(ctx context.Context, url string, pol filter.Policy) domain.Roster {
	roster := r.CompanyJobs(ctx, url)
	kept := make([]domain.JobListing, 0, len(roster.Listings))
	for _, l := range roster.Listings {
		if pol.IsEngineeringRole(l.Title) {
			kept = append(kept, l)
		}
	}
	roster.Listings = kept
	return roster
}
