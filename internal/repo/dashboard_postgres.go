package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type PostgresDashboardRepository struct {
	db *sql.DB
}

func NewPostgresDashboardRepository(db *sql.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) Summary(ctx context.Context, today string) (models.DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	day, err := time.Parse("2006-01-02", today)
	if err != nil {
		return models.DashboardSummary{}, err
	}

	var s models.DashboardSummary
	err = r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE current_quantity <= minimum_stock),
			COUNT(*) FILTER (WHERE current_quantity = 0),
			COUNT(*) FILTER (WHERE updated_at >= $1 AND updated_at < $2),
			(SELECT COUNT(*) FROM categories WHERE is_active),
			(SELECT COUNT(*) FROM stock_transactions)
		FROM products
	`, day, day.AddDate(0, 0, 1)).Scan(&s.TotalProducts, &s.LowStockCount, &s.OutOfStockCount, &s.UpdatedToday,
		&s.TotalCategories, &s.TotalTransactions)
	return s, err
}

func (r *PostgresDashboardRepository) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name,
			COUNT(p.id),
			COUNT(p.id) FILTER (WHERE p.current_quantity <= p.minimum_stock),
			COALESCE(SUM(p.current_quantity), 0)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.is_active
		GROUP BY c.id, c.name, c.sort_order
		ORDER BY c.sort_order, c.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CategorySummary{}
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.CategoryID, &s.Name, &s.ProductCount, &s.LowStockCount, &s.TotalQuantity); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresDashboardRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.product_id, t.transaction_type, t.quantity_change, t.unit_cost, t.reference_number,
			t.notes, t.performed_by, t.metadata, t.created_at, COALESCE(p.name, '')
		FROM stock_transactions t
		LEFT JOIN products p ON p.id = t.product_id
		ORDER BY t.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ActivityEntry{}
	for rows.Next() {
		var e models.ActivityEntry
		var name string
		t, err := scanTransaction(scanFunc(func(dest ...any) error {
			return rows.Scan(append(dest, &name)...)
		}))
		if err != nil {
			return nil, err
		}
		e.StockTransaction = t
		e.ProductName = name
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresDashboardRepository) StockStatus(ctx context.Context) (models.StockStatusReport, error) {
	report := models.StockStatusReport{OutOfStock: []models.Product{}, LowStock: []models.Product{}}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products WHERE current_quantity <= minimum_stock ORDER BY name`)
	if err != nil {
		return report, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return report, err
		}
		if p.CurrentQuantity == 0 {
			report.OutOfStock = append(report.OutOfStock, p)
		} else {
			report.LowStock = append(report.LowStock, p)
		}
	}
	if err := rows.Err(); err != nil {
		return report, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE current_quantity > minimum_stock`).Scan(&report.GoodCount)
	return report, err
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }
