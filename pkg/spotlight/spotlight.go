package spotlight

import (
	"context"
	"sync"
)

// DataSource contributes search results to the spotlight.
type DataSource interface {
	Find(ctx context.Context, q string) []Item
}

type Spotlight interface {
	Register(ds ...DataSource)
	Find(ctx context.Context, q string) []Item
}

func New() Spotlight {
	return &spotlight{}
}

type spotlight struct {
	mu          sync.RWMutex
	dataSources []DataSource
}

func (s *spotlight) Register(ds ...DataSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataSources = append(s.dataSources, ds...)
}

func (s *spotlight) Find(ctx context.Context, q string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Item
	for _, ds := range s.dataSources {
		out = append(out, ds.Find(ctx, q)...)
	}
	return out
}
