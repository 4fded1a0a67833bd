package httpapi

import (
	"database/sql"
	"net"
	"net/http"
)

type DBHandler struct {
	DB *sql.DB
}

// Checkpoint forces a WAL checkpoint; local callers only.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host != "127.0.0.1" && host != "::1" && host != "localhost" {
		WriteError(w, r, http.StatusForbidden, "forbidden", "local requests only")
		return
	}

	if _, err := h.DB.Exec(`PRAGMA wal_checkpoint(FULL);`); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
