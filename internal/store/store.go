// Package store is the page-level state container: the product list the UI
// renders, loaded from the backend and kept in step with every write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/cache"
	"github.com/julienmatondotezolo/ada-stock/internal/client"
	"github.com/julienmatondotezolo/ada-stock/internal/models"
	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

// Backend is the subset of the API client the store needs.
type Backend interface {
	HealthCheck(ctx context.Context) (json.RawMessage, error)
	ListProducts(ctx context.Context, q client.ProductQuery) ([]models.Product, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error)
	CreateProduct(ctx context.Context, in models.CreateProductRequest) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.UpdateProductRequest) (models.Product, error)
	UpdateProductQuantity(ctx context.Context, id string, quantity int) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

var (
	ErrItemNotFound = errors.New("item not found")
	ErrNoCategories = errors.New("No categories available. Please create a category first.")
)

// Source tells where the current item list came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
	SourceMock     Source = "mock"
)

// Outcome reports whether a write reached the backend. When Persisted is
// false the change was applied locally only and Err holds the reason.
type Outcome struct {
	Persisted bool
	Err       error
}

func persisted() Outcome { return Outcome{Persisted: true} }

func localOnly(err error) Outcome { return Outcome{Err: err} }

type Store struct {
	backend   Backend
	snapshots cache.SnapshotStore
	stab      *stock.Stabilizer
	now       func() time.Time
	log       *slog.Logger

	mu         sync.RWMutex
	items      []stock.Item
	categories []models.Category
	source     Source
	loadErr    error
}

type Option func(*Store)

// WithSnapshots keeps the last good product list in ss.
func WithSnapshots(ss cache.SnapshotStore) Option {
	return func(s *Store) { s.snapshots = ss }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithStabilizer(st *stock.Stabilizer) Option {
	return func(s *Store) { s.stab = st }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stab == nil {
		s.stab = stock.NewStabilizer(stock.EditIdleTimeout, stock.WithClock(s.now))
	}
	return s
}

// Load fetches the product list. On failure the error is kept for the
// banner and the list falls back to the last snapshot, then to mock data.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.fetch(ctx)
	if err != nil {
		s.log.Error("failed to load products", "error", err)
		fallback, source := s.fallbackItems(ctx)
		s.mu.Lock()
		s.items = fallback
		s.source = source
		s.loadErr = err
		s.mu.Unlock()
		return err
	}

	if cats, err := s.backend.ListCategories(ctx, false); err != nil {
		s.log.Warn("failed to load categories", "error", err)
	} else {
		s.mu.Lock()
		s.categories = cats
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.items = items
	s.source = SourceLive
	s.loadErr = nil
	s.mu.Unlock()
	s.saveSnapshot(ctx)
	return nil
}

func (s *Store) fetch(ctx context.Context) ([]stock.Item, error) {
	health, err := s.backend.HealthCheck(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("health check", "body", string(health))

	products, err := s.backend.ListProducts(ctx, client.ProductQuery{})
	if err != nil {
		return nil, err
	}
	now := s.now()
	items := make([]stock.Item, 0, len(products))
	for _, p := range products {
		items = append(items, stock.FromProduct(p, now))
	}
	return items, nil
}

func (s *Store) fallbackItems(ctx context.Context) ([]stock.Item, Source) {
	if s.snapshots != nil {
		snap, err := s.snapshots.Load(ctx)
		if err == nil {
			s.log.Info("using cached product snapshot", "saved_at", snap.SavedAt, "items", len(snap.Items))
			return snap.Items, SourceSnapshot
		}
		if !errors.Is(err, cache.ErrNoSnapshot) {
			s.log.Warn("failed to read product snapshot", "error", err)
		}
	}
	return stock.MockItems(), SourceMock
}

// saveSnapshot keeps the current list for offline use. Mock data is never
// saved.
func (s *Store) saveSnapshot(ctx context.Context) {
	if s.snapshots == nil || s.Source() == SourceMock {
		return
	}
	snap := cache.Snapshot{Items: s.Items(), SavedAt: s.now().UTC()}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.log.Warn("failed to save product snapshot", "error", err)
	}
}

// Items returns a copy of the list in load order.
func (s *Store) Items() []stock.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]stock.Item(nil), s.items...)
}

// Arranged returns the list in display order, frozen while an edit is in progress.
func (s *Store) Arranged() []stock.Item {
	return s.stab.Arrange(s.Items())
}

func (s *Store) Get(id string) (stock.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := stock.IndexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return stock.Item{}, false
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

// LoadError is the error of the last Load, nil after a successful one.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Editing reports whether the list order is currently frozen.
func (s *Store) Editing() bool {
	return s.stab.Editing()
}

func (s *Store) today() string {
	return stock.Today(s.now())
}

func (s *Store) categoryName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// DismissError hides the load error banner until the next failed Load.
func (s *Store) DismissError() {
	s.mu.Lock()
	s.loadErr = nil
	s.mu.Unlock()
}
