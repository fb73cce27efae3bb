package stock

import (
	"strings"
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

const dateLayout = "2006-01-02"

// Item is the flattened product shown by the UI.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	MinStock    int    `json:"minStock"`
	Unit        string `json:"unit"`
	LastUpdated string `json:"lastUpdated"`

	// Unsynced marks items whose last write only reached local state.
	Unsynced bool `json:"unsynced,omitempty"`
}

func (i Item) Status() Status {
	return Classify(i.Quantity, i.MinStock)
}

// FromProduct converts a backend product. Missing categories become "other"
// and a missing update time becomes today.
func FromProduct(p models.Product, now time.Time) Item {
	category := "other"
	if p.Category != nil && p.Category.Name != "" {
		category = p.Category.Name
	}
	return Item{
		ID:          p.ID,
		Name:        p.Name,
		Category:    category,
		Quantity:    p.CurrentQuantity,
		MinStock:    p.MinimumStock,
		Unit:        p.Unit,
		LastUpdated: datePart(p.UpdatedAt, now),
	}
}

// Today formats now the way LastUpdated is stored.
func Today(now time.Time) string {
	return now.UTC().Format(dateLayout)
}

func datePart(ts string, now time.Time) string {
	if ts == "" {
		return Today(now)
	}
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

// IndexOf returns the position of id in items or -1.
func IndexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
