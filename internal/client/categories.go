package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

func (c *Client) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	return do[[]models.Category](ctx, c, http.MethodGet,
		"/categories?include_inactive="+strconv.FormatBool(includeInactive), nil)
}

func (c *Client) GetCategory(ctx context.Context, id string) (models.Category, error) {
	return do[models.Category](ctx, c, http.MethodGet, "/categories/"+url.PathEscape(id), nil)
}

func (c *Client) CreateCategory(ctx context.Context, in models.Category) (models.Category, error) {
	return do[models.Category](ctx, c, http.MethodPost, "/categories", in)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in models.CategoryUpdate) (models.Category, error) {
	return do[models.Category](ctx, c, http.MethodPut, "/categories/"+url.PathEscape(id), in)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := do[any](ctx, c, http.MethodDelete, "/categories/"+url.PathEscape(id), nil)
	return err
}
