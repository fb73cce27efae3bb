package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

const transactionColumns = `id, product_id, transaction_type, quantity_change, unit_cost, reference_number, notes,
	performed_by, metadata, created_at`

func scanTransaction(row rowScanner) (models.StockTransaction, error) {
	var (
		t         models.StockTransaction
		cost      nullDecimal
		metadata  []byte
		createdAt time.Time
	)
	err := row.Scan(&t.ID, &t.ProductID, &t.TransactionType, &t.QuantityChange, &cost, &t.ReferenceNumber,
		&t.Notes, &t.PerformedBy, &metadata, &createdAt)
	if err != nil {
		return models.StockTransaction{}, err
	}
	t.UnitCost = cost.ptr()
	if len(metadata) > 0 {
		t.Metadata = metadata
	}
	t.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)
	return t, nil
}

// Log inserts a new stock movement
func (r *PostgresTransactionRepository) Log(ctx context.Context, tx models.StockTransaction) (models.StockTransaction, error) {
	query := `INSERT INTO stock_transactions (id, product_id, transaction_type, quantity_change, unit_cost,
		reference_number, notes, performed_by, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING ` + transactionColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var metadata any
	if len(tx.Metadata) > 0 {
		metadata = []byte(tx.Metadata)
	}
	logged, err := scanTransaction(r.db.QueryRowContext(ctx, query, uuid.NewString(), tx.ProductID,
		string(tx.TransactionType), tx.QuantityChange, decimalArg(tx.UnitCost), tx.ReferenceNumber, tx.Notes,
		tx.PerformedBy, metadata, time.Now().UTC()))
	if err != nil {
		return models.StockTransaction{}, fmt.Errorf("failed to insert transaction: %w", mapPgError(err))
	}
	return logged, nil
}

// GetByProductID returns movements for a specific product, newest first.
func (r *PostgresTransactionRepository) GetByProductID(ctx context.Context, productID string, tf TransactionFilter) ([]models.StockTransaction, int, error) {
	whereClause, args := buildWhereClause(productID, tf)

	if tf.Offset != nil && *tf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stock_transactions "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}
	if tf.Offset != nil && *tf.Offset >= total {
		return []models.StockTransaction{}, total, nil
	}

	query := fmt.Sprintf("SELECT %s FROM stock_transactions %s ORDER BY created_at DESC", transactionColumns, whereClause)
	argIndex := len(args) + 1
	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++
	if tf.Offset != nil && *tf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *tf.Offset)
	}

	txs, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return txs, total, nil
}

// buildWhereClause constructs the WHERE clause and returns arguments
func buildWhereClause(productID string, tf TransactionFilter) (string, []any) {
	args := []any{productID}
	whereClause := "WHERE product_id = $1"
	argIndex := 2

	if tf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *tf.Since)
		argIndex++
	}

	if tf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *tf.Until)
	}

	return whereClause, args
}

func (r *PostgresTransactionRepository) Recent(ctx context.Context, limit int) ([]models.StockTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.query(ctx, `SELECT `+transactionColumns+` FROM stock_transactions ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *PostgresTransactionRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_transactions`).Scan(&n)
	return n, err
}

func (r *PostgresTransactionRepository) query(ctx context.Context, query string, args ...any) ([]models.StockTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []models.StockTransaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
