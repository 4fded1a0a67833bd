package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/discover"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/extract"
	"jobscout-engine/internal/httpapi"
	"jobscout-engine/internal/scan"
	"jobscout-engine/internal/store"
)

func main() {
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		err = config.OverlaySeeds(&cfg, filepath.Join(dataDir, "seeds.yml"))
		return cfg, err
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobscout.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}
	if n, err := store.CleanupOldListings(db.Pool); err == nil && n > 0 {
		log.Printf("cleaned up %d stale listings", n)
	}

	registry := extract.NewRegistry()
	finder := discover.NewFinder(registry)
	hub := events.NewHub()

	var scanStatus atomic.Value
	scanStatus.Store(scan.Status{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Engine:      registry,
		Finder:      finder,
		CfgVal:      &cfgVal,
		ScanStatus:  &scanStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunScan: func(ctx context.Context, pool *sql.DB, cfg config.Config, onNew func()) (int, error) {
			return scan.RunOnce(ctx, pool, cfg, registry, onNew)
		},
	})

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("shutdown token: %s", token)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	log.Fatal(srv.Serve(ln))
}
