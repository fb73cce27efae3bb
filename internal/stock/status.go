// Package stock holds the inventory view logic shared by every page: stock
// status, ordering, filtering and the dashboard counters.
package stock

// Status is the three-way classification of a quantity against its minimum.
type Status string

const (
	StatusOut  Status = "out"
	StatusLow  Status = "low"
	StatusGood Status = "good"
)

// Classify returns out when quantity is zero, low when it is at or below
// minStock, good otherwise.
func Classify(quantity, minStock int) Status {
	if quantity == 0 {
		return StatusOut
	}
	if quantity <= minStock {
		return StatusLow
	}
	return StatusGood
}

// Priority orders statuses for display: out first, good last.
func (s Status) Priority() int {
	switch s {
	case StatusOut:
		return 0
	case StatusLow:
		return 1
	default:
		return 2
	}
}

// ParseStatus accepts the filter values out, low and good.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOut, StatusLow, StatusGood:
		return Status(s), true
	}
	return "", false
}

// Clamp keeps quantities at or above zero.
func Clamp(quantity int) int {
	return max(0, quantity)
}

// ApplyDelta adds delta to quantity and clamps the result.
func ApplyDelta(quantity, delta int) int {
	return Clamp(quantity + delta)
}
