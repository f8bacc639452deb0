package models

import (
	"errors"
	"reflect"
	"testing"
)

func selfLabel(id string) string { return id }

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		graph         *Graph[string]
		expectedError error
	}{
		{
			name:          "nil graph",
			graph:         nil,
			expectedError: ErrNilGraphPointer,
		},
		{
			name:          "empty graph",
			graph:         NewGraph[string](0),
			expectedError: ErrEmptyGraph,
		},
		{
			name: "graph with one vertex",
			graph: func() *Graph[string] {
				g := NewGraph[string](1)
				g.SetVertex("0", "zero")
				return g
			}(),
			expectedError: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			err := test.graph.Validate()
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Validate(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}

func TestSetVertex(t *testing.T) {
	g := NewGraph[string](2)
	g.SetVertex("a", "first")
	g.AddEdge("a", "b", selfLabel)
	g.SetVertex("a", "second")

	v, err := g.Vertex("a")
	if err != nil {
		t.Fatalf("Vertex(): expected nil, got %v", err)
	}

	if v.Label != "second" {
		t.Errorf("SetVertex(): expected label %v, got %v", "second", v.Label)
	}

	// overwriting the label keeps the out-links
	if !reflect.DeepEqual(v.OutLinks, []string{"b"}) {
		t.Errorf("SetVertex(): expected out-links %v, got %v", []string{"b"}, v.OutLinks)
	}

	if g.Size() != 1 {
		t.Errorf("Size(): expected 1, got %v", g.Size())
	}
}

func TestAddEdge(t *testing.T) {
	t.Run("duplicates are ignored, order is kept", func(t *testing.T) {
		g := NewGraph[string](1)
		g.SetVertex("a", "A")

		edges := []string{"c", "b", "c", "a", "b"}
		added := []bool{true, true, false, true, false}

		for i, target := range edges {
			if got := g.AddEdge("a", target, selfLabel); got != added[i] {
				t.Errorf("AddEdge(a, %v): expected %v, got %v", target, added[i], got)
			}
		}

		v, _ := g.Vertex("a")
		expected := []string{"c", "b", "a"}
		if !reflect.DeepEqual(v.OutLinks, expected) {
			t.Errorf("AddEdge(): expected %v, got %v", expected, v.OutLinks)
		}
	})

	t.Run("missing source is synthesized, target is not", func(t *testing.T) {
		g := NewGraph[string](1)
		g.AddEdge("x", "y", selfLabel)

		v, err := g.Vertex("x")
		if err != nil {
			t.Fatalf("Vertex(x): expected nil, got %v", err)
		}

		if v.Label != "x" {
			t.Errorf("AddEdge(): expected label %v, got %v", "x", v.Label)
		}

		if _, err := g.Vertex("y"); !errors.Is(err, ErrVertexNotFound) {
			t.Errorf("Vertex(y): expected %v, got %v", ErrVertexNotFound, err)
		}
	})
}

func TestIDs(t *testing.T) {
	g := NewGraph[int](3)
	g.SetVertex(7, "seven")
	g.AddEdge(3, 7, func(int) string { return "three" })
	g.SetVertex(5, "five")

	expected := []int{7, 3, 5}
	if !reflect.DeepEqual(g.IDs(), expected) {
		t.Errorf("IDs(): expected %v, got %v", expected, g.IDs())
	}

	for pos, ID := range expected {
		if got, _ := g.Position(ID); got != pos {
			t.Errorf("Position(%v): expected %v, got %v", ID, pos, got)
		}

		if g.At(pos).ID != ID {
			t.Errorf("At(%v): expected %v, got %v", pos, ID, g.At(pos).ID)
		}
	}

	if !g.At(0).IsDangling() || g.At(1).IsDangling() {
		t.Errorf("IsDangling(): expected only vertex 7 to be dangling")
	}
}

func TestFormatLinks(t *testing.T) {
	testCases := []struct {
		name     string
		links    []string
		expected string
	}{
		{name: "no links", links: []string{}, expected: ""},
		{name: "one link", links: []string{"a"}, expected: "a"},
		{name: "three links", links: []string{"a", "b", "c"}, expected: "a,b,c"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			str := FormatLinks(test.links)
			if str != test.expected {
				t.Fatalf("FormatLinks(): expected %v, got %v", test.expected, str)
			}

			if parsed := ParseLinks(str); !reflect.DeepEqual(parsed, test.links) {
				t.Errorf("ParseLinks(): expected %v, got %v", test.links, parsed)
			}
		})
	}
}
