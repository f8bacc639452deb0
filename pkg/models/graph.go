/*
The models package defines the fundamental structures and interfaces used in this project.

Graph:
The Graph is an arena of vertex records addressed by identifier through a hash
index. It is built once by the loader and then only read.

ResultStore:
The ResultStore interface abstracts the persistence of a computed ranking,
allowing for multiple implementations (in memory, Redis, SQLite).
*/
package models

import (
	"cmp"

	mapset "github.com/deckarep/golang-set/v2"
)

// Vertex represent the basic structure of a vertex in the graph.
type Vertex[ID cmp.Ordered] struct {
	ID    ID
	Label string

	// the targets of the vertex, in insertion order and without duplicates
	OutLinks []ID

	// the same targets as OutLinks, used to reject duplicates in O(1)
	links mapset.Set[ID]
}

// IsDangling returns whether the vertex has no out-links.
func (v Vertex[ID]) IsDangling() bool {
	return len(v.OutLinks) == 0
}

// Graph is a directed graph whose vertices are stored in an arena (a slice)
// and addressed through a map identifier --> position in the arena.
type Graph[ID cmp.Ordered] struct {
	vertices []Vertex[ID]
	index    map[ID]int
}

// NewGraph() returns an empty graph with room for size vertices.
func NewGraph[ID cmp.Ordered](size int) *Graph[ID] {
	return &Graph[ID]{
		vertices: make([]Vertex[ID], 0, size),
		index:    make(map[ID]int, size),
	}
}

// Validate() returns the appropriate error if the graph is nil or empty.
func (g *Graph[ID]) Validate() error {
	if g == nil {
		return ErrNilGraphPointer
	}

	if len(g.vertices) == 0 {
		return ErrEmptyGraph
	}

	return nil
}

// Size() returns the number of vertices in the graph.
func (g *Graph[ID]) Size() int {
	if g == nil {
		return 0
	}
	return len(g.vertices)
}

// Position() returns the position of the vertex in the arena.
func (g *Graph[ID]) Position(id ID) (int, bool) {
	if g == nil {
		return -1, false
	}

	pos, exists := g.index[id]
	return pos, exists
}

// Vertex() returns the vertex with the specified identifier.
// The returned OutLinks must not be modified.
func (g *Graph[ID]) Vertex(id ID) (Vertex[ID], error) {
	pos, exists := g.Position(id)
	if !exists {
		return Vertex[ID]{}, ErrVertexNotFound
	}

	return g.vertices[pos], nil
}

// At() returns the vertex at position pos in the arena. It panics if pos is out of range.
func (g *Graph[ID]) At(pos int) Vertex[ID] {
	return g.vertices[pos]
}

// IDs() returns the identifiers of all vertices, in arena (insertion) order.
func (g *Graph[ID]) IDs() []ID {
	if g == nil {
		return nil
	}

	IDs := make([]ID, len(g.vertices))
	for i, v := range g.vertices {
		IDs[i] = v.ID
	}
	return IDs
}

// SetVertex() adds a vertex with the given label, or overwrites the label
// if the vertex already exists. Existing out-links are left untouched.
func (g *Graph[ID]) SetVertex(id ID, label string) {
	if pos, exists := g.index[id]; exists {
		g.vertices[pos].Label = label
		return
	}

	g.index[id] = len(g.vertices)
	g.vertices = append(g.vertices, Vertex[ID]{
		ID:    id,
		Label: label,
		links: mapset.NewThreadUnsafeSet[ID](),
	})
}

// AddEdge() appends target to the out-links of source, and reports whether
// the edge was new. A source that is not yet in the graph is created with
// labelFn(source) as its label. The target is never created.
func (g *Graph[ID]) AddEdge(source, target ID, labelFn func(ID) string) bool {
	pos, exists := g.index[source]
	if !exists {
		g.SetVertex(source, labelFn(source))
		pos = g.index[source]
	}

	v := &g.vertices[pos]
	if !v.links.Add(target) {
		// already an out-link
		return false
	}

	v.OutLinks = append(v.OutLinks, target)
	return true
}
