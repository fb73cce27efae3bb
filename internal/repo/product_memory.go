package repo

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	now      func() time.Time
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		now:      time.Now,
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.CategoryID != "" && p.CategoryID != pf.CategoryID {
		return false
	}
	if pf.IsActive != nil && p.IsActive != *pf.IsActive {
		return false
	}
	if pf.LowStockOnly && p.CurrentQuantity > p.MinimumStock {
		return false
	}
	if pf.OutOfStockOnly && p.CurrentQuantity != 0 {
		return false
	}
	if pf.Search != "" {
		q := strings.ToLower(pf.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			return false
		}
	}
	return true
}

func compareProducts(col string) func(a, b models.Product) int {
	switch col {
	case "current_quantity":
		return func(a, b models.Product) int { return cmp.Compare(a.CurrentQuantity, b.CurrentQuantity) }
	case "minimum_stock":
		return func(a, b models.Product) int { return cmp.Compare(a.MinimumStock, b.MinimumStock) }
	case "created_at":
		return func(a, b models.Product) int { return strings.Compare(a.CreatedAt, b.CreatedAt) }
	case "updated_at":
		return func(a, b models.Product) int { return strings.Compare(a.UpdatedAt, b.UpdatedAt) }
	}
	return func(a, b models.Product) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	r.mu.RUnlock()

	col, desc := pf.orderBy()
	less := compareProducts(col)
	slices.SortStableFunc(filtered, func(a, b models.Product) int {
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = timestamp(r.now())
	p.UpdatedAt = p.CreatedAt
	p.Category = nil
	r.products = append(r.products, p)
	return p, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = timestamp(r.now())
			product.Category = nil
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) SetQuantity(_ context.Context, id string, quantity int) (models.Product, error) {
	if quantity < 0 {
		return models.Product{}, ErrInvalidQuantityChange
	}
	return r.mutateQuantity(id, func(int) int { return quantity })
}

// AdjustQuantity fails with ErrInvalidQuantityChange when stock would go negative.
func (r *InMemoryProductRepository) AdjustQuantity(_ context.Context, id string, delta int) (models.Product, error) {
	return r.mutateQuantity(id, func(q int) int { return q + delta })
}

func (r *InMemoryProductRepository) mutateQuantity(id string, fn func(int) int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		next := fn(p.CurrentQuantity)
		if next < 0 {
			return models.Product{}, ErrInvalidQuantityChange
		}
		p.CurrentQuantity = next
		p.UpdatedAt = timestamp(r.now())
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

// CountByCategory returns how many products reference categoryID.
func (r *InMemoryProductRepository) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	r.products = []models.Product{}
	r.mu.Unlock()
}
