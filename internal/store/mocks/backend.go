package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/julienmatondotezolo/ada-stock/internal/client"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) HealthCheck(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) ListProducts(ctx context.Context, q client.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, q)
	if res := args.Get(0); res != nil {
		return res.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	args := m.Called(ctx, includeInactive)
	if res := args.Get(0); res != nil {
		return res.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) CreateProduct(ctx context.Context, in models.CreateProductRequest) (models.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockBackend) UpdateProduct(ctx context.Context, id string, in models.UpdateProductRequest) (models.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockBackend) UpdateProductQuantity(ctx context.Context, id string, quantity int) (models.Product, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockBackend) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
