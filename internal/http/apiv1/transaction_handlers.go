package apiv1

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/repo"
)

// applyTransaction moves stock by tx.QuantityChange and logs tx.
func applyTransaction(ctx context.Context, tx models.StockTransaction) (models.StockTransaction, error) {
	updated, err := productRepo.AdjustQuantity(ctx, tx.ProductID, tx.QuantityChange)
	if err != nil {
		return models.StockTransaction{}, err
	}
	alertIfLow(updated)
	return transactionRepo.Log(ctx, tx)
}

func writeTransactionError(w http.ResponseWriter, tx models.StockTransaction, err error) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		fail(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repo.ErrInvalidQuantityChange):
		fail(w, http.StatusConflict, "insufficient stock")
	default:
		slog.Error("could not record transaction", "product_id", tx.ProductID, "type", tx.TransactionType, "error", err)
		fail(w, http.StatusInternalServerError, "could not record transaction")
	}
}

// CreateTransactionHandler godoc
// @Summary Record a stock transaction
// @Description Applies the signed quantity_change to the product and logs it
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body models.StockTransaction true "Transaction"
// @Success 201 {object} Response{data=models.StockTransaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response "Insufficient stock"
// @Router /transactions [post]
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var tx models.StockTransaction
	if err := readJSON(w, r, &tx); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}
	if errs := validateTransaction(tx); len(errs) > 0 {
		failValidation(w, errs)
		return
	}

	tx.ID = ""
	tx.CreatedAt = ""
	tx.PerformedBy = performer(r, tx.PerformedBy)
	logged, err := applyTransaction(r.Context(), tx)
	if err != nil {
		writeTransactionError(w, tx, err)
		return
	}
	respond(w, http.StatusCreated, logged, "Transaction recorded")
}

// StockInHandler godoc
// @Summary Receive stock
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movement body models.StockMovementRequest true "Incoming stock"
// @Success 201 {object} Response{data=models.StockTransaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /transactions/stock-in [post]
func StockInHandler(w http.ResponseWriter, r *http.Request) {
	stockMovement(w, r, models.TransactionIn, 1)
}

// StockOutHandler godoc
// @Summary Consume stock
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movement body models.StockMovementRequest true "Outgoing stock"
// @Success 201 {object} Response{data=models.StockTransaction}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response "Insufficient stock"
// @Router /transactions/stock-out [post]
func StockOutHandler(w http.ResponseWriter, r *http.Request) {
	stockMovement(w, r, models.TransactionOut, -1)
}

func stockMovement(w http.ResponseWriter, r *http.Request, typ models.TransactionType, sign int) {
	var req models.StockMovementRequest
	if err := readJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid input")
		return
	}
	if errs := validateMovement(req); len(errs) > 0 {
		failValidation(w, errs)
		return
	}

	tx := models.StockTransaction{
		ProductID:       req.ProductID,
		TransactionType: typ,
		QuantityChange:  sign * req.Quantity,
		UnitCost:        req.UnitCost,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		PerformedBy:     performer(r, req.PerformedBy),
	}
	logged, err := applyTransaction(r.Context(), tx)
	if err != nil {
		writeTransactionError(w, tx, err)
		return
	}
	respond(w, http.StatusCreated, logged, "Stock updated")
}
