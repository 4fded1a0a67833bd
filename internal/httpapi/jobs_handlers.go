package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"jobscout-engine/internal/events"
	"jobscout-engine/internal/store"
)

type ListingsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	listings, err := store.ListListings(r.Context(), h.DB, store.ListListingsOpts{
		Sort:    q.Get("sort"),
		Company: q.Get("company"),
		Limit:   limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if listings == nil {
		listings = []store.Listing{}
	}
	writeJSON(w, listings)
}

func (h ListingsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	ok, err := store.DeleteListing(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such listing")
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "listing_deleted", map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
