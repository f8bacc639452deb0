package pagerank

import (
	"cmp"
	"math"

	"github.com/vertex-lab/linkrank/pkg/models"
	"golang.org/x/sync/errgroup"
)

// below this many vertices per worker, an iteration runs on a single goroutine.
const minShardSize = 1024

// Engine computes rank-propagation steps over a fixed graph.
//
// At each step, for every vertex v with score r(v) and out-links L(v):
//   - if L(v) is not empty, each target in L(v) receives r(v) * d / |L(v)|;
//     targets that are not vertices of the graph receive nothing.
//   - if v is dangling, every vertex (v included) receives r(v) * d / N.
//
// Then the flat teleportation constant t is added to every vertex. Since t is
// not divided by N, the scores are a relative ranking signal and don't sum to one.
type Engine[ID cmp.Ordered] struct {
	graph  *models.Graph[ID]
	config Config

	// inLinks[v] holds the arena positions of the vertices linking to v, in arena order.
	inLinks [][]int

	// outDegree[u] is |L(u)|, counting targets that are not in the graph.
	outDegree []int

	// the arena positions of the dangling vertices, in arena order.
	dangling []int
}

// NewEngine() validates the config and the graph, and indexes the in-links of every vertex.
func NewEngine[ID cmp.Ordered](graph *models.Graph[ID], config Config) (*Engine[ID], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	size := graph.Size()
	e := &Engine[ID]{
		graph:     graph,
		config:    config,
		inLinks:   make([][]int, size),
		outDegree: make([]int, size),
	}

	for u := 0; u < size; u++ {
		vertex := graph.At(u)
		e.outDegree[u] = len(vertex.OutLinks)
		if vertex.IsDangling() {
			e.dangling = append(e.dangling, u)
			continue
		}

		for _, target := range vertex.OutLinks {
			if v, exists := graph.Position(target); exists {
				e.inLinks[v] = append(e.inLinks[v], u)
			}
		}
	}

	return e, nil
}

// Step() computes one iteration: it reads the current scores of the store,
// writes the new ones, makes them current and returns the total absolute
// difference between the old and new scores.
func (e *Engine[ID]) Step(store *RankStore[ID]) (float64, error) {
	if store == nil {
		return 0, ErrNilRankStorePointer
	}

	if store.graph != e.graph || store.Len() != e.graph.Size() {
		return 0, ErrGraphMismatch
	}

	size := store.Len()
	d := e.config.DampingFactor

	// the dangling mass is shared equally by all vertices
	danglingMass := 0.0
	for _, u := range e.dangling {
		danglingMass += store.current[u]
	}
	danglingShare := danglingMass * d / float64(size)

	workers := e.workers(size)
	if workers == 1 {
		e.accumulate(store, danglingShare, 0, size)
	} else {
		// each worker owns the writes of a contiguous range of vertices
		var group errgroup.Group
		shard := (size + workers - 1) / workers
		for start := 0; start < size; start += shard {
			end := min(start+shard, size)
			// accumulate cannot fail; Wait only joins the workers
			group.Go(func() error {
				e.accumulate(store, danglingShare, start, end)
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return 0, err
		}
	}

	// summed in arena order, so the result doesn't depend on the number of workers
	totalDiff := 0.0
	for pos := 0; pos < size; pos++ {
		totalDiff += math.Abs(store.next[pos] - store.current[pos])
	}

	store.swap()
	return totalDiff, nil
}

// accumulate writes the new score of the vertices in [start, end).
func (e *Engine[ID]) accumulate(store *RankStore[ID], danglingShare float64, start, end int) {
	d := e.config.DampingFactor
	t := e.config.Teleportation

	for v := start; v < end; v++ {
		score := danglingShare
		for _, u := range e.inLinks[v] {
			score += store.current[u] * d / float64(e.outDegree[u])
		}
		store.next[v] = score + t
	}
}

// workers returns how many goroutines to use for a graph of the given size.
func (e *Engine[ID]) workers(size int) int {
	workers := e.config.Workers
	if maxWorkers := size / minShardSize; workers > maxWorkers {
		workers = maxWorkers
	}
	return max(workers, 1)
}
