package httpapi

import (
	"database/sql"
	"net/http"
	"strings"
	"sync/atomic"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/store"
)

type ExtractHandler struct {
	Engine Engine
	Finder CareersFinder
	DB     *sql.DB
	CfgVal *atomic.Value // config.Config
}

// Description handles GET /extract?url=... and returns the posting text, or
// found=false when no strategy could pull anything out.
func (h ExtractHandler) Description(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_url", "url query parameter is required")
		return
	}

	text, ok := h.Engine.Description(r.Context(), url)
	writeJSON(w, map[string]any{"found": ok, "description": text})
}

// CompanyJobs handles GET /company/jobs?url=...&engineering_only=true.
func (h ExtractHandler) CompanyJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	url := strings.TrimSpace(q.Get("url"))
	if url == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_url", "url query parameter is required")
		return
	}

	if q.Get("engineering_only") == "true" {
		cfg := h.CfgVal.Load().(config.Config)
		writeJSON(w, h.Engine.EngineeringJobs(r.Context(), url, cfg.Policy))
		return
	}
	writeJSON(w, h.Engine.CompanyJobs(r.Context(), url))
}

// CompanySearch handles GET /company/search?name=... and resolves a company
// name to its careers page, caching hits.
func (h ExtractHandler) CompanySearch(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_name", "name query parameter is required")
		return
	}

	if url, platform, err := store.GetCareersURL(r.Context(), h.DB, name); err == nil && url != "" {
		writeJSON(w, map[string]any{"found": true, "url": url, "platform": platform, "cached": true})
		return
	}

	url, ok := h.Finder.SearchCareersURL(r.Context(), name)
	if !ok {
		writeJSON(w, map[string]any{"found": false})
		return
	}

	platform := ""
	if p, detected := h.Finder.DetectATS(url); detected {
		platform = string(p)
	}
	_ = store.UpsertCareersURL(r.Context(), h.DB, name, url, platform)

	writeJSON(w, map[string]any{"found": true, "url": url, "platform": platform, "cached": false})
}
