package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

// ProductQuery filters GET /products. Zero-valued fields are not sent.
type ProductQuery struct {
	CategoryID     string
	IsActive       *bool
	LowStockOnly   bool
	OutOfStockOnly bool
	Search         string
	SortBy         string
	SortOrder      string
	Limit          int
	Offset         int
}

// Encode renders the query string without the leading '?'.
func (q ProductQuery) Encode() string {
	v := url.Values{}
	if q.CategoryID != "" {
		v.Set("category_id", q.CategoryID)
	}
	if q.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	if q.LowStockOnly {
		v.Set("low_stock_only", "true")
	}
	if q.OutOfStockOnly {
		v.Set("out_of_stock_only", "true")
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v.Encode()
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	path := "/products"
	if qs := q.Encode(); qs != "" {
		path += "?" + qs
	}
	return do[[]models.Product](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return do[models.Product](ctx, c, http.MethodGet, "/products/"+url.PathEscape(id), nil)
}

func (c *Client) CreateProduct(ctx context.Context, in models.CreateProductRequest) (models.Product, error) {
	return do[models.Product](ctx, c, http.MethodPost, "/products", in)
}

// UpdateProduct sends a partial update.
func (c *Client) UpdateProduct(ctx context.Context, id string, in models.UpdateProductRequest) (models.Product, error) {
	return do[models.Product](ctx, c, http.MethodPut, "/products/"+url.PathEscape(id), in)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := do[any](ctx, c, http.MethodDelete, "/products/"+url.PathEscape(id), nil)
	return err
}

// UpdateProductQuantity sets an absolute quantity.
func (c *Client) UpdateProductQuantity(ctx context.Context, id string, quantity int) (models.Product, error) {
	return do[models.Product](ctx, c, http.MethodPost, "/products/"+url.PathEscape(id)+"/quantity",
		models.QuantityUpdate{Quantity: quantity})
}

// AdjustProductQuantity applies a signed delta on the server.
func (c *Client) AdjustProductQuantity(ctx context.Context, id string, change int, reason, performedBy string) (models.AdjustmentResult, error) {
	return do[models.AdjustmentResult](ctx, c, http.MethodPost, "/products/"+url.PathEscape(id)+"/adjust",
		models.QuantityAdjustment{QuantityChange: change, Reason: reason, PerformedBy: performedBy})
}
