package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIn         TransactionType = "IN"
	TransactionOut        TransactionType = "OUT"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
	TransactionWaste      TransactionType = "WASTE"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionAdjustment, TransactionWaste, TransactionTransfer:
		return true
	}
	return false
}

// StockTransaction is a stock movement sent to the backend.
type StockTransaction struct {
	ID              string           `json:"id,omitempty"`
	ProductID       string           `json:"product_id"`
	TransactionType TransactionType  `json:"transaction_type"`
	QuantityChange  int              `json:"quantity_change"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	PerformedBy     string           `json:"performed_by,omitempty"`
	Metadata        json.RawMessage  `json:"metadata,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

// StockMovementRequest is the payload of the stock-in and stock-out shortcuts.
type StockMovementRequest struct {
	ProductID       string           `json:"product_id"`
	Quantity        int              `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	PerformedBy     string           `json:"performed_by,omitempty"`
}
