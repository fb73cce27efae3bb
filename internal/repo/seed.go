package repo

import (
	"context"
	"fmt"

	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

// SeedCategories creates the standard kitchen categories when none exist.
func SeedCategories(ctx context.Context, r CategoryRepository, catalog *i18n.Catalog) (int, error) {
	existing, err := r.GetAll(ctx, true)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, key := range stock.CategoryKeys {
		name := string(key)
		_, err := r.Create(ctx, models.Category{
			Name:      name,
			NameNL:    catalog.CategoryLabel(i18n.NL, name),
			NameFR:    catalog.CategoryLabel(i18n.FR, name),
			NameEN:    catalog.CategoryLabel(i18n.EN, name),
			SortOrder: i,
			IsActive:  true,
		})
		if err != nil {
			return i, fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	return len(stock.CategoryKeys), nil
}
