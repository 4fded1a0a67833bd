package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// UserAgent is sent on every outbound request.
const UserAgent = "Mozilla/5.0 (compatible; JobScout/1.0)"

// HostLimiter rate-limits requests per hostname (api.lever.co,
// boards.greenhouse.io, ...) so a scan cannot hammer a single board. A nil
// *HostLimiter waits for nothing, which keeps test wiring simple.
type HostLimiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	r     rate.Limit
	b     int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		hosts: make(map[string]*rate.Limiter),
		r:     rate.Limit(reqPerSec),
		b:     burst,
	}
}

func (hl *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	if hl == nil {
		return nil
	}
	host := "_"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}

	hl.mu.Lock()
	lim, ok := hl.hosts[host]
	if !ok {
		lim = rate.NewLimiter(hl.r, hl.b)
		hl.hosts[host] = lim
	}
	hl.mu.Unlock()

	return lim.Wait(ctx)
}
