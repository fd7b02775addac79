// Package slug derives URL identifiers for projects from their titles.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

const fallback = "project"

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\p{Z}\s-]`)
	spaces     = regexp.MustCompile(`[\p{Z}\s]+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// Slugify lowercases title, keeps [a-z0-9-], and joins words with hyphens.
// When the result is already in existing, the first free -2, -3, ...
// suffix is appended. The result is never empty.
func Slugify(title string, existing []string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = disallowed.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = fallback
	}

	taken := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		taken[e] = struct{}{}
	}

	candidate := s
	for n := 2; ; n++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = s + "-" + strconv.Itoa(n)
	}
}
