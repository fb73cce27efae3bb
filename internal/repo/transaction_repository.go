package repo

import (
	"context"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// TransactionRepository is the append-only stock movement log.
type TransactionRepository interface {
	Log(ctx context.Context, tx models.StockTransaction) (models.StockTransaction, error)
	GetByProductID(ctx context.Context, productID string, tf TransactionFilter) ([]models.StockTransaction, int, error)
	Recent(ctx context.Context, limit int) ([]models.StockTransaction, error)
	Count(ctx context.Context) (int, error)
}
