package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

// NewProduct is the add form's payload.
type NewProduct struct {
	Name       string
	CategoryID string
	// Category is the display name used when the product only exists locally.
	Category string
	Quantity int
	MinStock int
	Unit     string
}

// Patch is the edit form's payload; nil fields are left untouched.
type Patch struct {
	Name     *string
	Quantity *int
	MinStock *int
	Unit     *string
}

func (p Patch) apply(it *stock.Item) {
	if p.Name != nil && *p.Name != "" {
		it.Name = *p.Name
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.MinStock != nil {
		it.MinStock = *p.MinStock
	}
	if p.Unit != nil && *p.Unit != "" {
		it.Unit = *p.Unit
	}
}

func (p Patch) request() models.UpdateProductRequest {
	var req models.UpdateProductRequest
	if p.Name != nil && *p.Name != "" {
		req.Name = p.Name
	}
	req.CurrentQuantity = p.Quantity
	req.MinimumStock = p.MinStock
	if p.Unit != nil && *p.Unit != "" {
		req.Unit = p.Unit
	}
	return req
}

// modify runs fn on the item under the write lock.
func (s *Store) modify(id string, fn func(*stock.Item)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := stock.IndexOf(s.items, id)
	if i < 0 {
		return false
	}
	fn(&s.items[i])
	return true
}

// SetQuantity stores an absolute quantity, clamped at zero.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) (Outcome, error) {
	if _, ok := s.Get(id); !ok {
		return Outcome{}, ErrItemNotFound
	}
	quantity = stock.Clamp(quantity)
	s.stab.Touch()

	p, err := s.backend.UpdateProductQuantity(ctx, id, quantity)
	out := persisted()
	if err != nil {
		s.log.Error("failed to update quantity", "id", id, "quantity", quantity, "error", err)
		out = localOnly(err)
	} else {
		quantity = p.CurrentQuantity
	}
	today := s.today()
	s.modify(id, func(it *stock.Item) {
		it.Quantity = quantity
		it.LastUpdated = today
		it.Unsynced = !out.Persisted
	})
	s.saveSnapshot(ctx)
	return out, nil
}

// AdjustQuantity applies a quick action delta; the result never goes below zero.
func (s *Store) AdjustQuantity(ctx context.Context, id string, delta int) (Outcome, error) {
	it, ok := s.Get(id)
	if !ok {
		return Outcome{}, ErrItemNotFound
	}
	return s.SetQuantity(ctx, id, stock.ApplyDelta(it.Quantity, delta))
}

// Add creates a product. Without a category id the backend category with
// the same name is used, or the first one when none matches.
func (s *Store) Add(ctx context.Context, np NewProduct) (stock.Item, Outcome) {
	if np.Unit == "" {
		np.Unit = string(stock.DefaultUnit)
	}
	np.Quantity = stock.Clamp(np.Quantity)
	np.MinStock = stock.Clamp(np.MinStock)

	p, err := s.create(ctx, np)
	var it stock.Item
	out := persisted()
	if err != nil {
		s.log.Error("failed to create product", "name", np.Name, "error", err)
		out = localOnly(err)
		category := np.Category
		if category == "" {
			category = string(stock.CategoryOther)
		}
		it = stock.Item{
			ID:       uuid.NewString(),
			Name:     np.Name,
			Category: category,
			Quantity: np.Quantity,
			MinStock: np.MinStock,
			Unit:     np.Unit,
			Unsynced: true,
		}
	} else {
		it = stock.FromProduct(p, s.now())
		if p.Category == nil {
			if name := s.categoryName(p.CategoryID); name != "" {
				it.Category = name
			} else if np.Category != "" {
				it.Category = np.Category
			}
		}
	}
	it.LastUpdated = s.today()

	s.mu.Lock()
	s.items = append(s.items, it)
	s.mu.Unlock()
	s.saveSnapshot(ctx)
	return it, out
}

func (s *Store) create(ctx context.Context, np NewProduct) (models.Product, error) {
	categoryID := np.CategoryID
	if categoryID == "" {
		cats, err := s.backend.ListCategories(ctx, false)
		if err != nil {
			return models.Product{}, fmt.Errorf("list categories: %w", err)
		}
		if len(cats) == 0 {
			return models.Product{}, ErrNoCategories
		}
		categoryID = matchCategory(cats, np.Category)
	}
	return s.backend.CreateProduct(ctx, models.CreateProductRequest{
		CategoryID:      categoryID,
		Name:            np.Name,
		Unit:            np.Unit,
		CurrentQuantity: np.Quantity,
		MinimumStock:    np.MinStock,
	})
}

// matchCategory returns the id of the category named name, or of the first
// category when none matches. cats must not be empty.
func matchCategory(cats []models.Category, name string) string {
	want := stock.NormalizeCategory(name)
	if want != "" {
		for _, c := range cats {
			if stock.NormalizeCategory(c.Name) == want {
				return c.ID
			}
		}
	}
	return cats[0].ID
}

// Update applies the edit form.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Outcome, error) {
	if _, ok := s.Get(id); !ok {
		return Outcome{}, ErrItemNotFound
	}
	if patch.Quantity != nil {
		q := stock.Clamp(*patch.Quantity)
		patch.Quantity = &q
		s.stab.Touch()
	}
	if patch.MinStock != nil {
		m := stock.Clamp(*patch.MinStock)
		patch.MinStock = &m
	}

	p, err := s.backend.UpdateProduct(ctx, id, patch.request())
	out := persisted()
	if err != nil {
		s.log.Error("failed to update product", "id", id, "error", err)
		out = localOnly(err)
	}
	today := s.today()
	s.modify(id, func(it *stock.Item) {
		if out.Persisted {
			synced := stock.FromProduct(p, s.now())
			if p.Category == nil {
				synced.Category = it.Category
			}
			*it = synced
		} else {
			patch.apply(it)
		}
		it.LastUpdated = today
		it.Unsynced = !out.Persisted
	})
	s.saveSnapshot(ctx)
	return out, nil
}

// Delete removes the item locally whether or not the backend call succeeds.
func (s *Store) Delete(ctx context.Context, id string) (Outcome, error) {
	if _, ok := s.Get(id); !ok {
		return Outcome{}, ErrItemNotFound
	}
	out := persisted()
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		s.log.Error("failed to delete product", "id", id, "error", err)
		out = localOnly(err)
	}
	s.mu.Lock()
	if i := stock.IndexOf(s.items, id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	s.mu.Unlock()
	s.saveSnapshot(ctx)
	return out, nil
}
