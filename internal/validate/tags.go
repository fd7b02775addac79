package validate

import "strings"

// NormalizeTags turns a comma separated string into a tag list, trimmed and
// lowercased with empty entries dropped. Anything else, arrays included, is
// returned unchanged so Project checks every element as submitted.
func NormalizeTags(raw any) any {
	if v, ok := raw.(string); ok {
		return Tags(strings.Split(v, ","))
	}
	return raw
}

// Tags trims, lowercases and drops empty entries, keeping order.
func Tags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
