package repo

import (
	"context"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
	SetQuantity(ctx context.Context, id string, quantity int) (models.Product, error)
	AdjustQuantity(ctx context.Context, id string, delta int) (models.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
