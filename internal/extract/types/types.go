package types

import (
	"context"

	"jobscout-engine/internal/domain"
)

// Extractor is one extraction strategy. Match is a pure predicate over the
// raw URL string (substring checks, no parsing); the registry picks the first
// extractor whose Match returns true.
//
// Description and CompanyJobs never propagate errors: fetch, status and parse
// failures are logged inside the strategy and degrade to ("", false) or an
// empty roster.
type Extractor interface {
	Name() domain.Platform
	Match(url string) bool
	Description(ctx context.Context, url string) (string, bool)
	CompanyJobs(ctx context.Context, url string) domain.Roster
}
