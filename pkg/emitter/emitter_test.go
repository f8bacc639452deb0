package emitter

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/vertex-lab/linkrank/pkg/models"
)

func setupGraph() *models.Graph[string] {
	g := models.NewGraph[string](4)
	g.SetVertex("a", "first")
	g.SetVertex("b", "second")
	g.SetVertex("c", "third")
	g.AddEdge("d", "a", func(id string) string { return id })
	g.AddEdge("d", "b", func(id string) string { return id })
	g.AddEdge("a", "b", func(id string) string { return id })
	return g
}

func TestRank(t *testing.T) {
	graph := setupGraph()
	scores := models.RankMap[string]{
		"a": 0.5,
		"b": 2.0,
		"c": 0.5,
		"d": 0.15,
	}

	ranked := Rank(graph, scores)
	expectedIDs := []string{"b", "a", "c", "d"}

	IDs := make([]string, len(ranked))
	for i, entry := range ranked {
		IDs[i] = entry.ID
	}

	if !reflect.DeepEqual(IDs, expectedIDs) {
		t.Fatalf("Rank(): expected %v, got %v", expectedIDs, IDs)
	}

	if ranked[1].Label != "first" || !reflect.DeepEqual(ranked[1].OutLinks, []string{"b"}) {
		t.Errorf("Rank(): expected label and out-links of a, got %v", ranked[1])
	}

	if ranked[3].Label != "d" || !reflect.DeepEqual(ranked[3].OutLinks, []string{"a", "b"}) {
		t.Errorf("Rank(): expected label and out-links of d, got %v", ranked[3])
	}
}

func TestRankDangling(t *testing.T) {
	ranked := Rank(setupGraph(), models.RankMap[string]{"b": 1})
	for _, entry := range ranked {
		if entry.ID != "b" && entry.ID != "c" {
			continue
		}

		if entry.OutLinks == nil || len(entry.OutLinks) != 0 {
			t.Errorf("Rank(): expected empty non-nil out-links for %v, got %#v", entry.ID, entry.OutLinks)
		}
	}

	data, err := json.Marshal(ranked[0])
	if err != nil {
		t.Fatalf("Marshal(): expected nil, got %v", err)
	}

	expected := `{"id":"b","label":"second","score":1,"out_links":[]}`
	if string(data) != expected {
		t.Errorf("Marshal(): expected %s, got %s", expected, data)
	}
}

func TestWrite(t *testing.T) {
	testCases := []struct {
		name     string
		ranked   []models.Ranked[string]
		expected string
	}{
		{
			name:     "empty ranking",
			ranked:   nil,
			expected: "",
		},
		{
			name: "no out-links",
			ranked: []models.Ranked[string]{
				{ID: "Y", Score: 1.425},
			},
			expected: "Y\t1.425000\n",
		},
		{
			name: "mixed",
			ranked: []models.Ranked[string]{
				{ID: "Y", Score: 1.425},
				{ID: "X", Score: 0.575, OutLinks: []string{"Y", "Z"}},
			},
			expected: "Y\t1.425000\nX\t0.575000\tY,Z\n",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, test.ranked); err != nil {
				t.Fatalf("Write(): expected nil, got %v", err)
			}

			if buf.String() != test.expected {
				t.Errorf("Write(): expected %q, got %q", test.expected, buf.String())
			}
		})
	}
}

type failingWriter struct{}

var errWrite = errors.New("disk is full")

func (failingWriter) Write(p []byte) (int, error) { return 0, errWrite }

func TestWriteError(t *testing.T) {
	ranked := []models.Ranked[string]{{ID: "X", Score: 1}}
	if err := Write(failingWriter{}, ranked); !errors.Is(err, errWrite) {
		t.Errorf("Write(): expected %v, got %v", errWrite, err)
	}
}

func TestTop(t *testing.T) {
	ranked := Rank(setupGraph(), models.RankMap[string]{"a": 1, "b": 2, "c": 3, "d": 4})

	testCases := []struct {
		name        string
		n           int
		expectedLen int
	}{
		{name: "negative", n: -1, expectedLen: 0},
		{name: "zero", n: 0, expectedLen: 0},
		{name: "fewer", n: 2, expectedLen: 2},
		{name: "more than available", n: 10, expectedLen: 4},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			top := Top(ranked, test.n)
			if len(top) != test.expectedLen {
				t.Fatalf("Top(): expected %d entries, got %d", test.expectedLen, len(top))
			}

			if len(top) > 0 && top[0].ID != "d" {
				t.Errorf("Top(): expected d first, got %v", top[0].ID)
			}
		})
	}
}
