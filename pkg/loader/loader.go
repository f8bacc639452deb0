// The loader package parses vertex and edge records into a models.Graph.
//
// Both sources are tab-delimited text, one record per line:
//
//	vertices: <id>\t<label>[\t...]
//	edges:    <source_id>\t<target_id>[\t...]
//
// Parsing is lenient: blank lines, lines with fewer than two fields and
// records with an empty identifier are skipped without error. A vertex record
// with an empty label is kept, with the empty label.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/vertex-lab/linkrank/pkg/models"
)

const maxLineSize = 1024 * 1024

// Stats counts the records read from each source.
type Stats struct {
	VertexRecords int
	EdgeRecords   int
	Skipped       int
}

// Load() builds a graph from the vertex and edge sources. Vertex records are
// applied first, edge records second.
func Load(vertices, edges io.Reader) (*models.Graph[string], error) {
	graph, _, err := LoadWithStats(vertices, edges)
	return graph, err
}

// LoadWithStats() is Load, but it also returns how many records were applied and skipped.
func LoadWithStats(vertices, edges io.Reader) (*models.Graph[string], Stats, error) {
	if vertices == nil || edges == nil {
		return nil, Stats{}, ErrInputMissing
	}

	graph := models.NewGraph[string](0)
	var stats Stats

	// the label can be empty, the identifier can't
	err := scanRecords(vertices, func(id, label string) bool {
		graph.SetVertex(id, label)
		stats.VertexRecords++
		return true
	}, &stats.Skipped)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read the vertex records: %w", err)
	}

	err = scanRecords(edges, func(source, target string) bool {
		if target == "" {
			return false
		}

		graph.AddEdge(source, target, selfLabel)
		stats.EdgeRecords++
		return true
	}, &stats.Skipped)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read the edge records: %w", err)
	}

	return graph, stats, nil
}

// LoadResources() opens the two resources, which can be local paths or
// http(s) URLs, and loads the graph from them. Both resources are opened before
// any parsing happens, so a missing input is reported before any work is done.
func LoadResources(ctx context.Context, vertexResource, edgeResource string) (*models.Graph[string], Stats, error) {
	vertices, err := Open(ctx, vertexResource)
	if err != nil {
		return nil, Stats{}, err
	}
	defer vertices.Close()

	edges, err := Open(ctx, edgeResource)
	if err != nil {
		return nil, Stats{}, err
	}
	defer edges.Close()

	return LoadWithStats(vertices, edges)
}

// Open() returns a reader over the resource. Network resources are fetched
// with an http GET; everything else is treated as a local path.
func Open(ctx context.Context, resource string) (io.ReadCloser, error) {
	if resource == "" {
		return nil, fmt.Errorf("%w: no resource specified", ErrInputMissing)
	}

	if IsNetworkResource(resource) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, resource, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid resource %q: %w", resource, err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("could not load network resource %q: %w", resource, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %q", ErrInputMissing, resource)
			}
			return nil, fmt.Errorf("could not load network resource %q: status %d", resource, resp.StatusCode)
		}
		return resp.Body, nil
	}

	file, err := os.Open(resource)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrInputMissing, resource)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", resource, err)
	}
	return file, nil
}

// IsNetworkResource() returns whether the resource is an http(s) URL.
func IsNetworkResource(resource string) bool {
	return strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://")
}

// scanRecords calls apply with the first two fields of every valid line.
// Lines that are not valid, or that apply rejects, are counted as skipped.
func scanRecords(r io.Reader, apply func(first, second string) bool, skipped *int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		first, second, ok := parseRecord(scanner.Text())
		if !ok || !apply(first, second) {
			*skipped++
		}
	}

	return scanner.Err()
}

// parseRecord returns the first two tab-separated fields of the line, and
// whether the line is a valid record. A valid record has at least two fields
// and a non-empty first field. Blank lines are not valid records.
func parseRecord(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return "", "", false
	}

	first := strings.TrimSpace(fields[0])
	second := strings.TrimSpace(fields[1])
	if first == "" {
		return "", "", false
	}

	return first, second, true
}

func selfLabel(id string) string { return id }

//--------------------------ERROR-CODES--------------------------

var ErrInputMissing = errors.New("input source is missing")
