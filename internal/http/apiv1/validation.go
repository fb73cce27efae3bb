package apiv1

import (
	"strings"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

func validateProduct(p models.Product) []models.FieldError {
	errs := []models.FieldError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, models.FieldError{Field: "name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		errs = append(errs, models.FieldError{Field: "category_id", Description: "Category is required"})
	}
	if strings.TrimSpace(p.Unit) == "" {
		errs = append(errs, models.FieldError{Field: "unit", Description: "Unit is required"})
	}
	if p.CurrentQuantity < 0 {
		errs = append(errs, models.FieldError{Field: "current_quantity", Description: "Quantity cannot be negative"})
	}
	if p.MinimumStock < 0 {
		errs = append(errs, models.FieldError{Field: "minimum_stock", Description: "Minimum stock cannot be negative"})
	}
	if p.MaximumStock != nil && *p.MaximumStock < p.MinimumStock {
		errs = append(errs, models.FieldError{Field: "maximum_stock", Description: "Maximum stock cannot be below minimum stock"})
	}
	if p.CostPrice != nil && p.CostPrice.IsNegative() {
		errs = append(errs, models.FieldError{Field: "cost_price", Description: "Cost price cannot be negative"})
	}
	return errs
}

func validateCategory(c models.Category) []models.FieldError {
	errs := []models.FieldError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, models.FieldError{Field: "name", Description: "Name is required"})
	}
	if c.SortOrder < 0 {
		errs = append(errs, models.FieldError{Field: "sort_order", Description: "Sort order cannot be negative"})
	}
	return errs
}

func validateTransaction(tx models.StockTransaction) []models.FieldError {
	errs := []models.FieldError{}
	if strings.TrimSpace(tx.ProductID) == "" {
		errs = append(errs, models.FieldError{Field: "product_id", Description: "Product is required"})
	}
	if !tx.TransactionType.Valid() {
		errs = append(errs, models.FieldError{Field: "transaction_type", Description: "Transaction type must be IN, OUT, ADJUSTMENT, WASTE or TRANSFER"})
	}
	if tx.QuantityChange == 0 {
		errs = append(errs, models.FieldError{Field: "quantity_change", Description: "Quantity change cannot be zero"})
	}
	if tx.UnitCost != nil && tx.UnitCost.IsNegative() {
		errs = append(errs, models.FieldError{Field: "unit_cost", Description: "Unit cost cannot be negative"})
	}
	return errs
}

func validateMovement(m models.StockMovementRequest) []models.FieldError {
	errs := []models.FieldError{}
	if strings.TrimSpace(m.ProductID) == "" {
		errs = append(errs, models.FieldError{Field: "product_id", Description: "Product is required"})
	}
	if m.Quantity <= 0 {
		errs = append(errs, models.FieldError{Field: "quantity", Description: "Quantity must be greater than zero"})
	}
	if m.UnitCost != nil && m.UnitCost.IsNegative() {
		errs = append(errs, models.FieldError{Field: "unit_cost", Description: "Unit cost cannot be negative"})
	}
	return errs
}
