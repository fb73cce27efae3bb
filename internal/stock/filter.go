package stock

import (
	"slices"
	"strings"
)

const All = "all"

// Filter mirrors the search box and the two drop-downs of the product view.
type Filter struct {
	Search   string
	Category string
	Stock    string
}

// Active reports whether any criterion differs from its default.
func (f Filter) Active() bool {
	return f.Search != "" || (f.Category != "" && f.Category != All) || (f.Stock != "" && f.Stock != All)
}

// Match applies all three criteria to item.
func (f Filter) Match(item Item) bool {
	q := strings.ToLower(f.Search)
	if q != "" && !strings.Contains(strings.ToLower(item.Name), q) && !strings.Contains(strings.ToLower(item.Category), q) {
		return false
	}
	if f.Category != "" && f.Category != All && item.Category != f.Category {
		return false
	}
	if f.Stock != "" && f.Stock != All {
		status, ok := ParseStatus(f.Stock)
		if !ok || item.Status() != status {
			return false
		}
	}
	return true
}

// Apply returns the items matching f, in their original order.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Categories lists the distinct category names of items, sorted.
func Categories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	slices.Sort(out)
	return out
}
