package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, category_id, name, name_nl, name_fr, name_en, description, sku, barcode, unit,
	current_quantity, minimum_stock, maximum_stock, reorder_point, cost_price, storage_location,
	expiry_tracking, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p                  models.Product
		maxStock, reorder  sql.NullInt64
		createdAt, updated time.Time
		cost               nullDecimal
	)
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.NameNL, &p.NameFR, &p.NameEN, &p.Description,
		&p.SKU, &p.Barcode, &p.Unit, &p.CurrentQuantity, &p.MinimumStock, &maxStock, &reorder, &cost,
		&p.StorageLocation, &p.ExpiryTracking, &p.IsActive, &createdAt, &updated)
	if err != nil {
		return models.Product{}, err
	}
	p.MaximumStock = intPtr(maxStock)
	p.ReorderPoint = intPtr(reorder)
	p.CostPrice = cost.ptr()
	p.CreatedAt = timestamp(createdAt)
	p.UpdatedAt = timestamp(updated)
	return p, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (id, category_id, name, name_nl, name_fr, name_en, description, sku, barcode, unit,
		current_quantity, minimum_stock, maximum_stock, reorder_point, cost_price, storage_location, expiry_tracking,
		is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), p.CategoryID, p.Name, p.NameNL, p.NameFR, p.NameEN,
		p.Description, p.SKU, p.Barcode, p.Unit, p.CurrentQuantity, p.MinimumStock, p.MaximumStock, p.ReorderPoint,
		decimalArg(p.CostPrice), p.StorageLocation, p.ExpiryTracking, p.IsActive, time.Now().UTC())
	created, err := scanProduct(row)
	if err != nil {
		return models.Product{}, mapPgError(err)
	}
	return created, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET category_id = $1, name = $2, name_nl = $3, name_fr = $4, name_en = $5,
		description = $6, unit = $7, current_quantity = $8, minimum_stock = $9, maximum_stock = $10,
		cost_price = $11, storage_location = $12, is_active = $13, updated_at = $14
		WHERE id = $15 RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query, p.CategoryID, p.Name, p.NameNL, p.NameFR, p.NameEN,
		p.Description, p.Unit, p.CurrentQuantity, p.MinimumStock, p.MaximumStock, decimalArg(p.CostPrice),
		p.StorageLocation, p.IsActive, time.Now().UTC(), p.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, mapPgError(err)
	}
	return updated, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	col, desc := pf.orderBy()
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions
	query += fmt.Sprintf(" ORDER BY %s %s, id", col, dir)

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, totalCount, rows.Err()
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, pf.CategoryID)
		argIdx++
	}
	if pf.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *pf.IsActive)
		argIdx++
	}
	if pf.LowStockOnly {
		query += " AND current_quantity <= minimum_stock"
	}
	if pf.OutOfStockOnly {
		query += " AND current_quantity = 0"
	}
	if pf.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+pf.Search+"%")
		argIdx++
	}

	return query, args, argIdx
}

func (r *PostgresProductRepository) SetQuantity(ctx context.Context, id string, quantity int) (models.Product, error) {
	if quantity < 0 {
		return models.Product{}, ErrInvalidQuantityChange
	}
	query := `UPDATE products SET current_quantity = $1, updated_at = $2 WHERE id = $3 RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, quantity, time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) AdjustQuantity(ctx context.Context, id string, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET current_quantity = current_quantity + $1, updated_at = $2
		WHERE id = $3 AND current_quantity + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		// either the product is gone or the change would go negative
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	return p, err
}

func (r *PostgresProductRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	return n, err
}
