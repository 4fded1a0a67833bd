package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still wrap it in middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Extraction
	xh := ExtractHandler{Engine: d.Engine, Finder: d.Finder, DB: d.DB, CfgVal: d.CfgVal}
	mux.HandleFunc("/extract", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.Description,
	}))
	mux.HandleFunc("/company/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.CompanyJobs,
	}))
	mux.HandleFunc("/company/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.CompanySearch,
	}))

	// Stored listings
	lh := ListingsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.DeleteByPath, // expects /jobs/{id}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Scan
	sh := ScanHandler{
		DB:         d.DB,
		CfgVal:     d.CfgVal,
		ScanStatus: d.ScanStatus,
		Hub:        d.Hub,
		RunScan:    d.RunScan,
	}
	mux.HandleFunc("/scan/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))
	mux.HandleFunc("/scan/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	return mux
}
