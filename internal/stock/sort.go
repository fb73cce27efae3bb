package stock

import (
	"slices"
	"strings"
)

// Compare orders by status priority, then case-insensitive name.
func Compare(a, b Item) int {
	if d := a.Status().Priority() - b.Status().Priority(); d != 0 {
		return d
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// Sort sorts items in place; equal items keep their relative order.
func Sort(items []Item) {
	slices.SortStableFunc(items, Compare)
}

// Sorted returns a sorted copy of items.
func Sorted(items []Item) []Item {
	out := slices.Clone(items)
	Sort(out)
	return out
}
