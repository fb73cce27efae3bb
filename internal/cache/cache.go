// Package cache keeps the last product list the backend returned so the app
// can keep working from it when the backend is unreachable.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julienmatondotezolo/ada-stock/internal/stock"
)

var ErrNoSnapshot = errors.New("no snapshot")

// Snapshot is a product list as it was last loaded.
type Snapshot struct {
	Items   []stock.Item `json:"items"`
	SavedAt time.Time    `json:"saved_at"`
}

type SnapshotStore interface {
	Save(ctx context.Context, s Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}

// Memory keeps the snapshot in process.
type Memory struct {
	mu   sync.Mutex
	snap *Snapshot
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Save(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Items = append([]stock.Item(nil), s.Items...)
	m.snap = &s
	return nil
}

func (m *Memory) Load(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	s := *m.snap
	s.Items = append([]stock.Item(nil), s.Items...)
	return s, nil
}
