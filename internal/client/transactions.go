package client

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

func (c *Client) RecordTransaction(ctx context.Context, tx models.StockTransaction) (models.StockTransaction, error) {
	return do[models.StockTransaction](ctx, c, http.MethodPost, "/transactions", tx)
}

// StockIn records received goods. unitCost may be nil.
func (c *Client) StockIn(ctx context.Context, productID string, quantity int, unitCost *decimal.Decimal, ref, notes string) (models.StockTransaction, error) {
	return do[models.StockTransaction](ctx, c, http.MethodPost, "/transactions/stock-in", models.StockMovementRequest{
		ProductID:       productID,
		Quantity:        quantity,
		UnitCost:        unitCost,
		ReferenceNumber: ref,
		Notes:           notes,
		PerformedBy:     PerformedBy,
	})
}

func (c *Client) StockOut(ctx context.Context, productID string, quantity int, ref, notes string) (models.StockTransaction, error) {
	return do[models.StockTransaction](ctx, c, http.MethodPost, "/transactions/stock-out", models.StockMovementRequest{
		ProductID:       productID,
		Quantity:        quantity,
		ReferenceNumber: ref,
		Notes:           notes,
		PerformedBy:     PerformedBy,
	})
}
