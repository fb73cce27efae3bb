package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type InMemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions []models.StockTransaction
	now          func() time.Time
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{
		transactions: []models.StockTransaction{},
		now:          time.Now,
	}
}

// Log appends a stock movement.
func (r *InMemoryTransactionRepository) Log(_ context.Context, tx models.StockTransaction) (models.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = uuid.NewString()
	tx.CreatedAt = r.now().UTC().Format(time.RFC3339Nano)
	r.transactions = append(r.transactions, tx)
	return tx, nil
}

// GetByProductID returns movements for a product, newest first, optionally
// filtered by date range and paginated.
func (r *InMemoryTransactionRepository) GetByProductID(_ context.Context, productID string, tf TransactionFilter) ([]models.StockTransaction, int, error) {
	r.mu.RLock()
	var filtered []models.StockTransaction
	for _, t := range r.transactions {
		if t.ProductID != productID {
			continue
		}
		created, _ := time.Parse(time.RFC3339Nano, t.CreatedAt)
		if (tf.Since != nil && created.Before(*tf.Since)) || (tf.Until != nil && created.After(*tf.Until)) {
			continue
		}
		filtered = append(filtered, t)
	}
	r.mu.RUnlock()
	slices.Reverse(filtered)

	if tf.Offset != nil && *tf.Offset > len(filtered) {
		return []models.StockTransaction{}, len(filtered), nil
	}

	start := 0
	if tf.Offset != nil {
		start = clamp(*tf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	end = clamp(start+limit, start, end)

	return filtered[start:end], len(filtered), nil
}

// Recent returns the last limit movements, newest first.
func (r *InMemoryTransactionRepository) Recent(_ context.Context, limit int) ([]models.StockTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := clamp(limit, 0, len(r.transactions))
	out := make([]models.StockTransaction, 0, n)
	for i := len(r.transactions) - 1; i >= len(r.transactions)-n; i-- {
		out = append(out, r.transactions[i])
	}
	return out, nil
}

func (r *InMemoryTransactionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.transactions), nil
}
