package repo

import (
	"context"
	"strings"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type InMemoryDashboardRepository struct {
	productRepo     ProductRepository
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
}

func NewInMemoryDashboardRepository() *InMemoryDashboardRepository {
	return &InMemoryDashboardRepository{}
}

func (d *InMemoryDashboardRepository) SetRepositories(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
) {
	d.productRepo = productRepo
	d.categoryRepo = categoryRepo
	d.transactionRepo = transactionRepo
}

func (d *InMemoryDashboardRepository) allProducts(ctx context.Context) ([]models.Product, error) {
	products, _, err := d.productRepo.Filter(ctx, ProductFilter{})
	return products, err
}

func (d *InMemoryDashboardRepository) Summary(ctx context.Context, today string) (models.DashboardSummary, error) {
	var s models.DashboardSummary

	products, err := d.allProducts(ctx)
	if err != nil {
		return s, err
	}
	s.TotalProducts = len(products)
	for _, p := range products {
		if p.CurrentQuantity <= p.MinimumStock {
			s.LowStockCount++
		}
		if p.CurrentQuantity == 0 {
			s.OutOfStockCount++
		}
		if strings.HasPrefix(p.UpdatedAt, today) {
			s.UpdatedToday++
		}
	}

	categories, err := d.categoryRepo.GetAll(ctx, false)
	if err != nil {
		return s, err
	}
	s.TotalCategories = len(categories)

	if s.TotalTransactions, err = d.transactionRepo.Count(ctx); err != nil {
		return s, err
	}
	return s, nil
}

func (d *InMemoryDashboardRepository) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	categories, err := d.categoryRepo.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	products, err := d.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(categories))
	out := make([]models.CategorySummary, len(categories))
	for i, c := range categories {
		index[c.ID] = i
		out[i] = models.CategorySummary{CategoryID: c.ID, Name: c.Name}
	}
	for _, p := range products {
		i, ok := index[p.CategoryID]
		if !ok {
			continue
		}
		out[i].ProductCount++
		out[i].TotalQuantity += p.CurrentQuantity
		if p.CurrentQuantity <= p.MinimumStock {
			out[i].LowStockCount++
		}
	}
	return out, nil
}

func (d *InMemoryDashboardRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	txs, err := d.transactionRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.ActivityEntry, 0, len(txs))
	for _, t := range txs {
		entry := models.ActivityEntry{StockTransaction: t}
		if p, err := d.productRepo.GetByID(ctx, t.ProductID); err == nil {
			entry.ProductName = p.Name
		}
		out = append(out, entry)
	}
	return out, nil
}

func (d *InMemoryDashboardRepository) StockStatus(ctx context.Context) (models.StockStatusReport, error) {
	report := models.StockStatusReport{OutOfStock: []models.Product{}, LowStock: []models.Product{}}
	products, err := d.allProducts(ctx)
	if err != nil {
		return report, err
	}
	for _, p := range products {
		switch {
		case p.CurrentQuantity == 0:
			report.OutOfStock = append(report.OutOfStock, p)
		case p.CurrentQuantity <= p.MinimumStock:
			report.LowStock = append(report.LowStock, p)
		default:
			report.GoodCount++
		}
	}
	return report, nil
}
