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

type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
	now        func() time.Time
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{categories: []models.Category{}, now: time.Now}
}

func (r *InMemoryCategoryRepository) nameTaken(name, exceptID string) bool {
	for _, c := range r.categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *InMemoryCategoryRepository) Create(_ context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return models.Category{}, ErrDuplicatedValueUnique
	}
	c.ID = uuid.NewString()
	c.CreatedAt = timestamp(r.now())
	c.UpdatedAt = c.CreatedAt
	r.categories = append(r.categories, c)
	return c, nil
}

// GetAll returns categories by sort order, then name.
func (r *InMemoryCategoryRepository) GetAll(_ context.Context, includeInactive bool) ([]models.Category, error) {
	r.mu.RLock()
	out := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b models.Category) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), strings.Compare(a.Name, b.Name))
	})
	return out, nil
}

func (r *InMemoryCategoryRepository) GetByID(_ context.Context, id string) (models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Update(_ context.Context, category models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(category.Name, category.ID) {
		return models.Category{}, ErrDuplicatedValueUnique
	}
	for i, c := range r.categories {
		if c.ID == category.ID {
			category.CreatedAt = c.CreatedAt
			category.UpdatedAt = timestamp(r.now())
			r.categories[i] = category
			return category, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}
