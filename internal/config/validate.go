package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy of cfg plus everything a user
// editing the config should hear about before it is saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(strings.ToLower(x))
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Policy.Allow = trimList(out.Policy.Allow)
	out.Policy.Deny = trimList(out.Policy.Deny)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Scan.RatePerSec <= 0 {
		res.addErr("scan.rate_per_sec must be > 0")
	} else if out.Scan.RatePerSec > 10 {
		res.addWarn("scan.rate_per_sec is high (%.1f) and may trip board rate limits.", out.Scan.RatePerSec)
	}
	if out.Scan.Burst <= 0 {
		res.addErr("scan.burst must be > 0")
	}

	if len(out.Policy.Allow) == 0 {
		res.addWarn("policy.allow is empty; every title will be filtered out.")
	}

	// a keyword in both lists always loses to deny
	denySet := map[string]bool{}
	for _, d := range out.Policy.Deny {
		denySet[d] = true
	}
	for _, a := range out.Policy.Allow {
		if denySet[a] {
			res.addWarn("keyword appears in both allow and deny: %q", a)
		}
	}

	for i, s := range out.Scan.Seeds {
		u := strings.TrimSpace(s.URL)
		out.Scan.Seeds[i].URL = u
		if u == "" {
			res.addErr("scan.seeds[%d].url is required", i)
		} else if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			res.addErr("scan.seeds[%d].url must be absolute: %q", i, u)
		}
	}

	return out, res
}
