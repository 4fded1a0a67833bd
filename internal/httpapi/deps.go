package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/filter"
)

// Engine is the extraction surface the handlers need; the registry satisfies
// it, tests stub it.
type Engine interface {
	Description(ctx context.Context, url string) (string, bool)
	CompanyJobs(ctx context.Context, url string) domain.Roster
	EngineeringJobs(ctx context.Context, url string, pol filter.Policy) domain.Roster
}

// CareersFinder locates boards from company names.
type CareersFinder interface {
	SearchCareersURL(ctx context.Context, company string) (string, bool)
	DetectATS(url string) (domain.Platform, bool)
}

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Engine Engine
	Finder CareersFinder

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	ScanStatus *atomic.Value // stores scan.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scan entrypoint (inject for testability)
	RunScan func(ctx context.Context, db *sql.DB, cfg config.Config, onNewListing func()) (added int, err error)
}
