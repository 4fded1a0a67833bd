package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Scan.RatePerSec <= 0 {
		errs = append(errs, "scan.rate_per_sec must be > 0")
	}
	if cfg.Scan.Burst <= 0 {
		errs = append(errs, "scan.burst must be > 0")
	}

	for i, s := range cfg.Scan.Seeds {
		if strings.TrimSpace(s.URL) == "" {
			errs = append(errs, fmt.Sprintf("scan.seeds[%d].url is required", i))
		}
	}
	for i, kw := range cfg.Policy.Allow {
		if strings.TrimSpace(kw) == "" {
			errs = append(errs, fmt.Sprintf("policy.allow[%d] cannot be empty", i))
		}
	}
	for i, kw := range cfg.Policy.Deny {
		if strings.TrimSpace(kw) == "" {
			errs = append(errs, fmt.Sprintf("policy.deny[%d] cannot be empty", i))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// SaveAtomic writes cfg via tmp-then-rename, keeping the previous file as
// .bak. A file lock serializes concurrent savers on the same path.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
