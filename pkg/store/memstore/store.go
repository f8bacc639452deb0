// The memstore package defines the in-memory version of the ResultStore interface.
package memstore

import (
	"context"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/linkrank/pkg/models"
)

// snapshot is one saved ranking. It is never modified after being published.
type snapshot struct {
	order []string

	// associates an ID to its ranking entry.
	entries *xsync.MapOf[string, models.Ranked[string]]
}

// ResultStore keeps the last saved ranking in memory. It is safe for concurrent use.
// Readers always observe the order and the entries of the same Save.
type ResultStore struct {
	current atomic.Pointer[snapshot]
}

// NewResultStore() returns an empty in-memory store.
func NewResultStore() *ResultStore {
	s := &ResultStore{}
	s.current.Store(&snapshot{
		order:   []string{},
		entries: xsync.NewMapOf[string, models.Ranked[string]](),
	})
	return s
}

// Validate() returns the appropriate error if the store is nil.
func (s *ResultStore) Validate() error {
	if s == nil || s.current.Load() == nil {
		return models.ErrNilStorePointer
	}
	return nil
}

// Size() returns the number of ranked vertices (ignores errors).
func (s *ResultStore) Size(ctx context.Context) int {
	if s.Validate() != nil {
		return 0
	}
	return len(s.current.Load().order)
}

// Save() replaces the stored ranking with the provided one.
func (s *ResultStore) Save(ctx context.Context, ranking []models.Ranked[string]) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	next := &snapshot{
		order:   make([]string, len(ranking)),
		entries: xsync.NewMapOfPresized[string, models.Ranked[string]](len(ranking)),
	}

	for i, entry := range ranking {
		next.order[i] = entry.ID
		next.entries.Store(entry.ID, entry)
	}

	s.current.Store(next)
	return nil
}

// Top() returns the first limit entries of the ranking.
func (s *ResultStore) Top(ctx context.Context, limit int) ([]models.Ranked[string], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		return nil, models.ErrInvalidLimit
	}

	snap := s.current.Load()
	top := make([]models.Ranked[string], 0, min(limit, len(snap.order)))
	for _, ID := range snap.order[:min(limit, len(snap.order))] {
		entry, _ := snap.entries.Load(ID)
		top = append(top, entry)
	}

	return top, nil
}

// Vertex() returns the ranking entry of the specified vertex.
func (s *ResultStore) Vertex(ctx context.Context, ID string) (models.Ranked[string], error) {
	if err := s.Validate(); err != nil {
		return models.Ranked[string]{}, err
	}

	entry, exists := s.current.Load().entries.Load(ID)
	if !exists {
		return models.Ranked[string]{}, models.ErrVertexNotFound
	}

	return entry, nil
}

// Close() is a no-op.
func (s *ResultStore) Close() error {
	return nil
}
