package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julienmatondotezolo/ada-stock/internal/cache"
	"github.com/julienmatondotezolo/ada-stock/internal/client"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
	"github.com/julienmatondotezolo/ada-stock/internal/store/mocks"
)

var (
	fixedNow = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)
	errDown  = &client.NetworkError{Op: "GET /health", Err: errors.New("connection refused")}
)

func newStore(b Backend, opts ...Option) *Store {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(b, opts...)
}

func apiProducts() []models.Product {
	veg := &models.Category{ID: "c1", Name: "vegetables"}
	return []models.Product{
		{ID: "p1", Name: "Tomatoes", CategoryID: "c1", Category: veg, Unit: "kg", CurrentQuantity: 10, MinimumStock: 5, UpdatedAt: "2026-02-17T08:00:00Z"},
		{ID: "p2", Name: "Salt", CategoryID: "c9", Unit: "kg", CurrentQuantity: 0, MinimumStock: 1},
	}
}

func loadedStore(t *testing.T) (*Store, *mocks.MockBackend) {
	t.Helper()
	b := new(mocks.MockBackend)
	b.On("HealthCheck", mock.Anything).Return(json.RawMessage(`{"status":"ok"}`), nil).Once()
	b.On("ListProducts", mock.Anything, client.ProductQuery{}).Return(apiProducts(), nil).Once()
	b.On("ListCategories", mock.Anything, false).Return([]models.Category{{ID: "c1", Name: "vegetables"}}, nil).Once()
	s := newStore(b)
	require.NoError(t, s.Load(context.Background()))
	return s, b
}

func TestLoadMapsProducts(t *testing.T) {
	s, b := loadedStore(t)
	b.AssertExpectations(t)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, stock.Item{ID: "p1", Name: "Tomatoes", Category: "vegetables", Quantity: 10, MinStock: 5, Unit: "kg", LastUpdated: "2026-02-17"}, items[0])
	assert.Equal(t, "other", items[1].Category)
	assert.Equal(t, "2026-02-18", items[1].LastUpdated)
	assert.Equal(t, SourceLive, s.Source())
	assert.NoError(t, s.LoadError())
	assert.Len(t, s.Categories(), 1)
}

func TestLoadFallsBackToMockData(t *testing.T) {
	b := new(mocks.MockBackend)
	b.On("HealthCheck", mock.Anything).Return(nil, errDown).Once()
	s := newStore(b)

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, SourceMock, s.Source())
	assert.Len(t, s.Items(), 8)
	assert.ErrorIs(t, s.LoadError(), err)
	b.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

func TestLoadPrefersSnapshotOverMockData(t *testing.T) {
	snaps := cache.NewMemory()
	s, b := loadedStore(t)
	s.snapshots = snaps
	s.saveSnapshot(context.Background())

	b.On("HealthCheck", mock.Anything).Return(json.RawMessage(`{}`), nil).Once()
	b.On("ListProducts", mock.Anything, client.ProductQuery{}).Return(nil, &client.APIError{Status: 500, Message: "boom"}).Once()

	err := s.Load(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, SourceSnapshot, s.Source())
	assert.Len(t, s.Items(), 2)
}

func TestOfflineWritesDoNotSnapshotMockData(t *testing.T) {
	snaps := cache.NewMemory()
	b := new(mocks.MockBackend)
	b.On("HealthCheck", mock.Anything).Return(nil, errDown).Twice()
	b.On("DeleteProduct", mock.Anything, "1").Return(errDown).Once()
	s := newStore(b, WithSnapshots(snaps))

	require.Error(t, s.Load(context.Background()))
	require.Equal(t, SourceMock, s.Source())

	out, err := s.Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Len(t, s.Items(), 7)

	_, err = snaps.Load(context.Background())
	assert.ErrorIs(t, err, cache.ErrNoSnapshot)

	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, SourceMock, s.Source())
	assert.Len(t, s.Items(), 8)
	b.AssertExpectations(t)
}

func TestRetryClearsLoadError(t *testing.T) {
	b := new(mocks.MockBackend)
	b.On("HealthCheck", mock.Anything).Return(nil, errDown).Once()
	s := newStore(b)
	require.Error(t, s.Load(context.Background()))

	b.On("HealthCheck", mock.Anything).Return(json.RawMessage(`{}`), nil).Once()
	b.On("ListProducts", mock.Anything, client.ProductQuery{}).Return(apiProducts(), nil).Once()
	b.On("ListCategories", mock.Anything, false).Return(nil, errDown).Once()
	require.NoError(t, s.Load(context.Background()))
	assert.NoError(t, s.LoadError())
	assert.Len(t, s.Items(), 2)
}

func TestAdjustQuantityPersists(t *testing.T) {
	s, b := loadedStore(t)
	b.On("UpdateProductQuantity", mock.Anything, "p1", 15).Return(models.Product{ID: "p1", CurrentQuantity: 15}, nil).Once()

	out, err := s.AdjustQuantity(context.Background(), "p1", 5)
	require.NoError(t, err)
	assert.True(t, out.Persisted)

	it, _ := s.Get("p1")
	assert.Equal(t, 15, it.Quantity)
	assert.Equal(t, "2026-02-18", it.LastUpdated)
	assert.False(t, it.Unsynced)
	assert.True(t, s.Editing())
	b.AssertExpectations(t)
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	s, b := loadedStore(t)
	b.On("UpdateProductQuantity", mock.Anything, "p1", 0).Return(models.Product{ID: "p1", CurrentQuantity: 0}, nil).Once()

	_, err := s.AdjustQuantity(context.Background(), "p1", -50)
	require.NoError(t, err)
	it, _ := s.Get("p1")
	assert.Equal(t, 0, it.Quantity)
}

func TestWriteFailureFallsBackLocally(t *testing.T) {
	s, b := loadedStore(t)
	b.On("UpdateProductQuantity", mock.Anything, "p1", 9).Return(models.Product{}, errDown).Once()

	out, err := s.AdjustQuantity(context.Background(), "p1", -1)
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.ErrorIs(t, out.Err, errDown)

	it, _ := s.Get("p1")
	assert.Equal(t, 9, it.Quantity)
	assert.True(t, it.Unsynced)
}

func TestUnknownItem(t *testing.T) {
	s, _ := loadedStore(t)
	_, err := s.SetQuantity(context.Background(), "nope", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = s.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAddDefaultsToFirstCategory(t *testing.T) {
	s, b := loadedStore(t)
	b.On("ListCategories", mock.Anything, false).Return([]models.Category{{ID: "c1", Name: "vegetables"}, {ID: "c2", Name: "dairy"}}, nil).Once()
	want := models.CreateProductRequest{CategoryID: "c1", Name: "Tomatoes", Unit: "pcs", CurrentQuantity: 15, MinimumStock: 5}
	b.On("CreateProduct", mock.Anything, want).Return(models.Product{ID: "p3", CategoryID: "c1", Name: "Tomatoes", Unit: "pcs", CurrentQuantity: 15, MinimumStock: 5}, nil).Once()

	it, out := s.Add(context.Background(), NewProduct{Name: "Tomatoes", Quantity: 15, MinStock: 5})
	assert.True(t, out.Persisted)
	assert.Equal(t, "p3", it.ID)
	assert.Equal(t, "vegetables", it.Category)
	assert.Len(t, s.Items(), 3)
	b.AssertExpectations(t)
}

func TestAddMatchesCategoryByName(t *testing.T) {
	s, b := loadedStore(t)
	b.On("ListCategories", mock.Anything, false).Return([]models.Category{{ID: "c-veg", Name: "vegetables"}, {ID: "c-dairy", Name: "Dairy"}}, nil).Once()
	want := models.CreateProductRequest{CategoryID: "c-dairy", Name: "Brie", Unit: "pcs", CurrentQuantity: 4, MinimumStock: 2}
	b.On("CreateProduct", mock.Anything, want).Return(models.Product{ID: "p4", CategoryID: "c-dairy", Name: "Brie", Unit: "pcs", CurrentQuantity: 4, MinimumStock: 2}, nil).Once()

	it, out := s.Add(context.Background(), NewProduct{Name: "Brie", Category: "dairy", Quantity: 4, MinStock: 2})
	assert.True(t, out.Persisted)
	assert.Equal(t, "p4", it.ID)
	assert.Equal(t, "dairy", it.Category)
	b.AssertExpectations(t)
}

func TestAddUnknownCategoryUsesFirst(t *testing.T) {
	s, b := loadedStore(t)
	b.On("ListCategories", mock.Anything, false).Return([]models.Category{{ID: "c1", Name: "vegetables"}, {ID: "c2", Name: "dairy"}}, nil).Once()
	want := models.CreateProductRequest{CategoryID: "c1", Name: "Saffron", Unit: "g", CurrentQuantity: 1, MinimumStock: 1}
	b.On("CreateProduct", mock.Anything, want).Return(models.Product{ID: "p5", CategoryID: "c1", Name: "Saffron", Unit: "g", CurrentQuantity: 1, MinimumStock: 1}, nil).Once()

	it, out := s.Add(context.Background(), NewProduct{Name: "Saffron", Category: "spices", Quantity: 1, MinStock: 1, Unit: "g"})
	assert.True(t, out.Persisted)
	assert.Equal(t, "vegetables", it.Category)
	b.AssertExpectations(t)
}

func TestAddWithoutCategoriesFallsBackLocally(t *testing.T) {
	s, b := loadedStore(t)
	b.On("ListCategories", mock.Anything, false).Return([]models.Category{}, nil).Once()

	it, out := s.Add(context.Background(), NewProduct{Name: "Capers", Category: "canned", Quantity: 2, MinStock: 1, Unit: "can"})
	assert.False(t, out.Persisted)
	assert.ErrorIs(t, out.Err, ErrNoCategories)
	assert.True(t, it.Unsynced)
	assert.Equal(t, "canned", it.Category)
	assert.Len(t, it.ID, 36)
	b.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestUpdateReconcilesWithServer(t *testing.T) {
	s, b := loadedStore(t)
	name := "Roma tomatoes"
	minStock := 12
	b.On("UpdateProduct", mock.Anything, "p1", models.UpdateProductRequest{Name: &name, MinimumStock: &minStock}).
		Return(models.Product{ID: "p1", Name: name, CategoryID: "c1", Unit: "kg", CurrentQuantity: 10, MinimumStock: 12}, nil).Once()

	out, err := s.Update(context.Background(), "p1", Patch{Name: &name, MinStock: &minStock})
	require.NoError(t, err)
	assert.True(t, out.Persisted)

	it, _ := s.Get("p1")
	assert.Equal(t, "Roma tomatoes", it.Name)
	assert.Equal(t, 12, it.MinStock)
	assert.Equal(t, "vegetables", it.Category, "category kept when the response has none")
	assert.Equal(t, stock.StatusLow, it.Status())
}

func TestDeleteRemovesItemEvenOffline(t *testing.T) {
	s, b := loadedStore(t)
	b.On("DeleteProduct", mock.Anything, "p2").Return(errDown).Once()

	out, err := s.Delete(context.Background(), "p2")
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	_, ok := s.Get("p2")
	assert.False(t, ok)
	assert.Len(t, s.Items(), 1)
}

func TestArrangedFreezesDuringEdit(t *testing.T) {
	s, b := loadedStore(t)
	// Salt (out) sorts before Tomatoes (good)
	assert.Equal(t, "p2", s.Arranged()[0].ID)

	b.On("UpdateProductQuantity", mock.Anything, "p2", 20).Return(models.Product{ID: "p2", CurrentQuantity: 20}, nil).Once()
	_, err := s.SetQuantity(context.Background(), "p2", 20)
	require.NoError(t, err)

	// now good and alphabetically after Tomatoes, but the order is frozen
	assert.Equal(t, []string{"p2", "p1"}, []string{s.Arranged()[0].ID, s.Arranged()[1].ID})
}
