package repo

import (
	"context"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetAll(ctx context.Context, includeInactive bool) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (models.Category, error)
	Update(ctx context.Context, c models.Category) (models.Category, error)
	Delete(ctx context.Context, id string) error
}
