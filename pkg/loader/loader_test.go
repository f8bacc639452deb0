package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vertex-lab/linkrank/pkg/models"
)

func TestLoad(t *testing.T) {
	vertices := strings.Join([]string{
		"1\tHome",
		"2\tAbout\textra field",
		"",
		"   ",
		"3",
		"4\tContact",
		"2\tAbout us",
	}, "\n")

	edges := strings.Join([]string{
		"1\t2",
		"1\t4",
		"1\t2",
		"5\t1",
		"2\t9\t1.0",
		"malformed",
		"\t\t",
	}, "\r\n")

	graph, stats, err := LoadWithStats(strings.NewReader(vertices), strings.NewReader(edges))
	if err != nil {
		t.Fatalf("LoadWithStats(): expected nil, got %v", err)
	}

	expectedIDs := []string{"1", "2", "4", "5"}
	if !reflect.DeepEqual(graph.IDs(), expectedIDs) {
		t.Fatalf("LoadWithStats(): expected IDs %v, got %v", expectedIDs, graph.IDs())
	}

	expectedVertices := map[string]models.Vertex[string]{
		"1": {ID: "1", Label: "Home", OutLinks: []string{"2", "4"}},
		"2": {ID: "2", Label: "About us", OutLinks: []string{"9"}},
		"4": {ID: "4", Label: "Contact", OutLinks: nil},
		"5": {ID: "5", Label: "5", OutLinks: []string{"1"}},
	}

	for ID, expected := range expectedVertices {
		v, err := graph.Vertex(ID)
		if err != nil {
			t.Fatalf("Vertex(%v): expected nil, got %v", ID, err)
		}

		if v.Label != expected.Label {
			t.Errorf("Vertex(%v): expected label %v, got %v", ID, expected.Label, v.Label)
		}

		if len(v.OutLinks) != len(expected.OutLinks) || (len(v.OutLinks) > 0 && !reflect.DeepEqual(v.OutLinks, expected.OutLinks)) {
			t.Errorf("Vertex(%v): expected out-links %v, got %v", ID, expected.OutLinks, v.OutLinks)
		}
	}

	// edge targets are never synthesized
	if _, exists := graph.Position("9"); exists {
		t.Errorf("LoadWithStats(): target 9 should not be a vertex")
	}

	expectedStats := Stats{VertexRecords: 4, EdgeRecords: 5, Skipped: 5}
	if stats != expectedStats {
		t.Errorf("LoadWithStats(): expected stats %+v, got %+v", expectedStats, stats)
	}
}

func TestLoadMalformedTolerance(t *testing.T) {
	edges := "a\tb\nsinglefield\n"

	graph, err := Load(strings.NewReader(""), strings.NewReader(edges))
	if err != nil {
		t.Fatalf("Load(): expected nil, got %v", err)
	}

	if graph.Size() != 1 {
		t.Fatalf("Load(): expected 1 vertex, got %d", graph.Size())
	}

	v, err := graph.Vertex("a")
	if err != nil {
		t.Fatalf("Vertex(a): expected nil, got %v", err)
	}

	if !reflect.DeepEqual(v.OutLinks, []string{"b"}) {
		t.Errorf("Load(): expected out-links %v, got %v", []string{"b"}, v.OutLinks)
	}
}

func TestLoadEmptyFields(t *testing.T) {
	vertices := "1\t\tfoo\n2\tTwo\n\tno id\n"
	edges := "1\t\t2\n2\t1\n"

	graph, stats, err := LoadWithStats(strings.NewReader(vertices), strings.NewReader(edges))
	if err != nil {
		t.Fatalf("LoadWithStats(): expected nil, got %v", err)
	}

	expectedIDs := []string{"1", "2"}
	if !reflect.DeepEqual(graph.IDs(), expectedIDs) {
		t.Fatalf("LoadWithStats(): expected IDs %v, got %v", expectedIDs, graph.IDs())
	}

	v, err := graph.Vertex("1")
	if err != nil {
		t.Fatalf("Vertex(1): expected nil, got %v", err)
	}

	// the empty label is kept, and the edge with an empty target is skipped
	if v.Label != "" || len(v.OutLinks) != 0 {
		t.Errorf("Vertex(1): expected empty label and no out-links, got %+v", v)
	}

	expectedStats := Stats{VertexRecords: 2, EdgeRecords: 1, Skipped: 2}
	if stats != expectedStats {
		t.Errorf("LoadWithStats(): expected stats %+v, got %+v", expectedStats, stats)
	}
}

func TestLoadNilSource(t *testing.T) {
	_, err := Load(nil, strings.NewReader(""))
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("Load(): expected %v, got %v", ErrInputMissing, err)
	}
}

func TestLoadResources(t *testing.T) {
	dir := t.TempDir()
	vertexPath := filepath.Join(dir, "vertices.txt")
	edgePath := filepath.Join(dir, "edges.txt")

	if err := os.WriteFile(vertexPath, []byte("X\tPage X\nY\tPage Y\n"), 0644); err != nil {
		t.Fatalf("WriteFile(): expected nil, got %v", err)
	}
	if err := os.WriteFile(edgePath, []byte("X\tY\n"), 0644); err != nil {
		t.Fatalf("WriteFile(): expected nil, got %v", err)
	}

	t.Run("local files", func(t *testing.T) {
		graph, stats, err := LoadResources(context.Background(), vertexPath, edgePath)
		if err != nil {
			t.Fatalf("LoadResources(): expected nil, got %v", err)
		}

		if graph.Size() != 2 || stats.EdgeRecords != 1 {
			t.Errorf("LoadResources(): expected 2 vertices and 1 edge, got %d and %d", graph.Size(), stats.EdgeRecords)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadResources(context.Background(), vertexPath, filepath.Join(dir, "missing.txt"))
		if !errors.Is(err, ErrInputMissing) {
			t.Fatalf("LoadResources(): expected %v, got %v", ErrInputMissing, err)
		}
	})

	t.Run("empty resource", func(t *testing.T) {
		_, _, err := LoadResources(context.Background(), "", edgePath)
		if !errors.Is(err, ErrInputMissing) {
			t.Fatalf("LoadResources(): expected %v, got %v", ErrInputMissing, err)
		}
	})

	t.Run("network resources", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/vertices":
				w.Write([]byte("X\tPage X\n"))
			case "/edges":
				w.Write([]byte("X\tY\nY\tX\n"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		graph, _, err := LoadResources(context.Background(), server.URL+"/vertices", server.URL+"/edges")
		if err != nil {
			t.Fatalf("LoadResources(): expected nil, got %v", err)
		}

		if !reflect.DeepEqual(graph.IDs(), []string{"X", "Y"}) {
			t.Errorf("LoadResources(): expected IDs %v, got %v", []string{"X", "Y"}, graph.IDs())
		}

		_, _, err = LoadResources(context.Background(), server.URL+"/vertices", server.URL+"/nothing")
		if !errors.Is(err, ErrInputMissing) {
			t.Errorf("LoadResources(): expected %v, got %v", ErrInputMissing, err)
		}
	})
}
