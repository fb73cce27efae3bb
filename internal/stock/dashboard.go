package stock

// Summary holds the four dashboard counters. Low counts every item at or
// below its minimum, out-of-stock items included.
type Summary struct {
	Total        int `json:"total"`
	Low          int `json:"low"`
	Out          int `json:"out"`
	UpdatedToday int `json:"updatedToday"`
}

// CategoryStats is one row of the dashboard category breakdown.
type CategoryStats struct {
	Name     string
	Items    []Item
	LowStock int
}

// Summarize computes the dashboard counters; today is a YYYY-MM-DD date.
func Summarize(items []Item, today string) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		if it.Quantity <= it.MinStock {
			s.Low++
		}
		if it.Quantity == 0 {
			s.Out++
		}
		if it.LastUpdated == today {
			s.UpdatedToday++
		}
	}
	return s
}

// Urgent returns out-of-stock items followed by low items, each group sorted.
func Urgent(items []Item) []Item {
	var out, low []Item
	for _, it := range items {
		switch it.Status() {
		case StatusOut:
			out = append(out, it)
		case StatusLow:
			low = append(low, it)
		}
	}
	Sort(out)
	Sort(low)
	return append(out, low...)
}

// ByCategory groups items in order of first appearance.
func ByCategory(items []Item) []CategoryStats {
	index := map[string]int{}
	var stats []CategoryStats
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(stats)
			index[it.Category] = i
			stats = append(stats, CategoryStats{Name: it.Category})
		}
		stats[i].Items = append(stats[i].Items, it)
		if it.Quantity <= it.MinStock {
			stats[i].LowStock++
		}
	}
	return stats
}
