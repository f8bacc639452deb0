package models

import (
	"context"
	"errors"
)

// The ResultStore interface abstracts the persistence of a ranking.
type ResultStore interface {
	// Validate() returns the appropriate error if the store is nil or not connected.
	Validate() error

	// Size() returns the number of ranked vertices in the store (ignores errors).
	Size(ctx context.Context) int

	// Save() replaces the stored ranking with the provided one, which must be
	// sorted by score descending.
	Save(ctx context.Context, ranking []Ranked[string]) error

	// Top() returns the first limit entries of the ranking, in ranking order.
	Top(ctx context.Context, limit int) ([]Ranked[string], error)

	// Vertex() returns the ranking entry of the specified vertex.
	Vertex(ctx context.Context, ID string) (Ranked[string], error)

	// Close() releases the resources held by the store.
	Close() error
}

//--------------------------ERROR-CODES--------------------------

var ErrNilGraphPointer = errors.New("graph pointer is nil")
var ErrEmptyGraph = errors.New("graph is empty")
var ErrVertexNotFound = errors.New("vertex not found")

var ErrNilStorePointer = errors.New("result store pointer is nil")
var ErrNilClientPointer = errors.New("nil client pointer")
var ErrInvalidLimit = errors.New("limit should be greater than zero")
