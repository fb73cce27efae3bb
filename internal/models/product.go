package models

import "github.com/shopspring/decimal"

// Product represents a stock product as the backend serves it.
type Product struct {
	ID              string           `json:"id"`
	CategoryID      string           `json:"category_id"`
	Name            string           `json:"name"`
	NameNL          string           `json:"name_nl,omitempty"`
	NameFR          string           `json:"name_fr,omitempty"`
	NameEN          string           `json:"name_en,omitempty"`
	Description     string           `json:"description,omitempty"`
	SKU             string           `json:"sku,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	Unit            string           `json:"unit"`
	CurrentQuantity int              `json:"current_quantity"`
	MinimumStock    int              `json:"minimum_stock"`
	MaximumStock    *int             `json:"maximum_stock,omitempty"`
	ReorderPoint    *int             `json:"reorder_point,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	StorageLocation string           `json:"storage_location,omitempty"`
	ExpiryTracking  bool             `json:"expiry_tracking,omitempty"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       string           `json:"created_at,omitempty"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
	Category        *Category        `json:"category,omitempty"`
}

// CreateProductRequest is the payload of POST /products.
type CreateProductRequest struct {
	CategoryID      string           `json:"category_id"`
	Name            string           `json:"name"`
	NameNL          string           `json:"name_nl,omitempty"`
	NameFR          string           `json:"name_fr,omitempty"`
	NameEN          string           `json:"name_en,omitempty"`
	Description     string           `json:"description,omitempty"`
	SKU             string           `json:"sku,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	Unit            string           `json:"unit"`
	CurrentQuantity int              `json:"current_quantity"`
	MinimumStock    int              `json:"minimum_stock"`
	MaximumStock    *int             `json:"maximum_stock,omitempty"`
	ReorderPoint    *int             `json:"reorder_point,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	StorageLocation string           `json:"storage_location,omitempty"`
	ExpiryTracking  bool             `json:"expiry_tracking,omitempty"`
}

// UpdateProductRequest is a partial update; nil fields are left untouched.
type UpdateProductRequest struct {
	CategoryID      *string          `json:"category_id,omitempty"`
	Name            *string          `json:"name,omitempty"`
	NameNL          *string          `json:"name_nl,omitempty"`
	NameFR          *string          `json:"name_fr,omitempty"`
	NameEN          *string          `json:"name_en,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Unit            *string          `json:"unit,omitempty"`
	CurrentQuantity *int             `json:"current_quantity,omitempty"`
	MinimumStock    *int             `json:"minimum_stock,omitempty"`
	MaximumStock    *int             `json:"maximum_stock,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

// Apply copies every set field of the request onto p.
func (u UpdateProductRequest) Apply(p *Product) {
	if u.CategoryID != nil {
		p.CategoryID = *u.CategoryID
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.NameNL != nil {
		p.NameNL = *u.NameNL
	}
	if u.NameFR != nil {
		p.NameFR = *u.NameFR
	}
	if u.NameEN != nil {
		p.NameEN = *u.NameEN
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Unit != nil {
		p.Unit = *u.Unit
	}
	if u.CurrentQuantity != nil {
		p.CurrentQuantity = *u.CurrentQuantity
	}
	if u.MinimumStock != nil {
		p.MinimumStock = *u.MinimumStock
	}
	if u.MaximumStock != nil {
		p.MaximumStock = u.MaximumStock
	}
	if u.CostPrice != nil {
		p.CostPrice = u.CostPrice
	}
	if u.StorageLocation != nil {
		p.StorageLocation = *u.StorageLocation
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
}

// QuantityUpdate is the payload of POST /products/{id}/quantity.
type QuantityUpdate struct {
	Quantity int `json:"quantity"`
}

// QuantityAdjustment is the payload of POST /products/{id}/adjust.
type QuantityAdjustment struct {
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason,omitempty"`
	PerformedBy    string `json:"performed_by,omitempty"`
}

// AdjustmentResult is returned by the adjust endpoint.
type AdjustmentResult struct {
	Product     Product          `json:"product"`
	Transaction StockTransaction `json:"transaction"`
}
