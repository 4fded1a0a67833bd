package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/scan"
)

type ScanHandler struct {
	DB         *sql.DB
	CfgVal     *atomic.Value // config.Config
	ScanStatus *atomic.Value // scan.Status
	Hub        *events.Hub
	RunScan    func(ctx context.Context, db *sql.DB, cfg config.Config, onNewListing func()) (added int, err error)
}

func (h ScanHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScanStatus.Load().(scan.Status)
	writeJSON(w, st)
}

func (h ScanHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ScanStatus.Load().(scan.Status)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScanStatus.Store(scan.Status{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeScanStarted, nil))

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		added, err := h.RunScan(context.Background(), h.DB, cfg, func() {
			h.Hub.Publish(events.MakeEvent("", events.TypeListingAdded, nil))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.ScanStatus.Load().(scan.Status)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = added
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScanStatus.Store(next)

		h.Hub.Publish(events.MakeEvent("", events.TypeScanFinished, map[string]any{"added": added}))
	}()

	writeJSON(w, map[string]any{"ok": true})
}
