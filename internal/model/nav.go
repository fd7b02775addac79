package model

import "sort"

type NavItem struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
	Order int    `json:"order" yaml:"order"`
}

// SortNavItems returns a copy of items ordered by Order. Items sharing an
// order keep their stored position.
func SortNavItems(items []NavItem) []NavItem {
	out := make([]NavItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Renumber returns a copy of items with Order set to the array position.
// Any order the caller supplied is discarded.
func Renumber(items []NavItem) []NavItem {
	out := make([]NavItem, len(items))
	for i, it := range items {
		it.Order = i
		out[i] = it
	}
	return out
}
