package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SlugAfterHost pulls a board slug out of an ATS URL by plain string
// splitting: drop the scheme, split on "/", take the segment immediately
// after the first one containing marker. Deliberately not a full URL parse;
// every supported platform puts the slug right after its host, and keeping
// this a pure string function makes the fragility testable in isolation.
func SlugAfterHost(rawURL, marker string) string {
	s := strings.TrimPrefix(rawURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	parts := strings.Split(s, "/")
	for i, part := range parts {
		if strings.Contains(part, marker) && i+1 < len(parts) {
			seg := parts[i+1]
			if j := strings.IndexAny(seg, "?#"); j >= 0 {
				seg = seg[:j]
			}
			return seg
		}
	}
	return ""
}

// DisplayName turns a board slug into a readable company name: hyphens to
// spaces, title-cased. Empty slugs come back as "Unknown".
func DisplayName(slug string) string {
	if slug == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
