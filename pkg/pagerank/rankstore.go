package pagerank

import (
	"cmp"

	"github.com/vertex-lab/linkrank/pkg/models"
)

// RankStore maps every vertex of a graph to its score. The scores live in two
// buffers indexed by arena position: current holds the scores of the last
// completed iteration, next is written by the iteration in progress. The buffers
// are swapped at the end of each iteration, so no vertex ever reads a score of
// the iteration being computed.
type RankStore[ID cmp.Ordered] struct {
	graph   *models.Graph[ID]
	current []float64
	next    []float64
}

// NewRankStore() returns a RankStore where every vertex of the graph has the specified score.
func NewRankStore[ID cmp.Ordered](graph *models.Graph[ID], initial float64) (*RankStore[ID], error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	size := graph.Size()
	store := &RankStore[ID]{
		graph:   graph,
		current: make([]float64, size),
		next:    make([]float64, size),
	}

	for i := range store.current {
		store.current[i] = initial
	}

	return store, nil
}

// Len() returns the number of vertices in the store.
func (s *RankStore[ID]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.current)
}

// Score() returns the current score of the vertex, and whether the vertex exists.
func (s *RankStore[ID]) Score(id ID) (float64, bool) {
	if s == nil {
		return 0, false
	}

	pos, exists := s.graph.Position(id)
	if !exists {
		return 0, false
	}
	return s.current[pos], true
}

// Map() returns a copy of the current scores as a RankMap.
func (s *RankStore[ID]) Map() models.RankMap[ID] {
	if s == nil {
		return nil
	}

	ranks := make(models.RankMap[ID], len(s.current))
	for pos, score := range s.current {
		ranks[s.graph.At(pos).ID] = score
	}
	return ranks
}

// swap makes the next buffer current. The old current buffer becomes the
// scratch space of the following iteration.
func (s *RankStore[ID]) swap() {
	s.current, s.next = s.next, s.current
}
