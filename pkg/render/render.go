// The render package draws a ranking as a directed graph with graphviz.
// Each vertex is labeled with its score and its size grows with the score.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/vertex-lab/linkrank/pkg/models"
)

const (
	minWidth float64 = 0.75
	maxWidth float64 = 3.0
)

// ParseFormat() returns the graphviz format for svg, png or dot.
func ParseFormat(format string) (graphviz.Format, error) {
	switch format {
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "dot":
		return graphviz.XDOT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Render() draws the first top entries of the ranking, and the links between
// them, to w. A non-positive top draws the whole ranking.
func Render(w io.Writer, ranked []models.Ranked[string], format graphviz.Format, top int) error {
	if len(ranked) == 0 {
		return ErrEmptyRanking
	}

	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	g := graphviz.New()
	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return err
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	// the ranking is sorted, so the first entry has the highest score
	highest := ranked[0].Score
	nodes := make(map[string]*cgraph.Node, len(ranked))

	for _, entry := range ranked {
		node, err := graph.CreateNode(entry.ID)
		if err != nil {
			return fmt.Errorf("failed to create node %v: %w", entry.ID, err)
		}

		node.SetLabel(fmt.Sprintf("%s\n%.6f", entry.Label, entry.Score))
		node.SetShape(cgraph.EllipseShape)
		node.SetWidth(width(entry.Score, highest))
		nodes[entry.ID] = node
	}

	for _, entry := range ranked {
		for _, link := range entry.OutLinks {
			target, exists := nodes[link]
			if !exists {
				continue
			}

			if _, err := graph.CreateEdge(entry.ID+"->"+link, nodes[entry.ID], target); err != nil {
				return fmt.Errorf("failed to create edge %v -> %v: %w", entry.ID, link, err)
			}
		}
	}

	return g.Render(graph, format, w)
}

// width scales the node linearly with its score.
func width(score, highest float64) float64 {
	if highest <= 0 {
		return minWidth
	}
	return minWidth + (maxWidth-minWidth)*score/highest
}

//--------------------------ERROR-CODES--------------------------

var ErrUnsupportedFormat = errors.New("unsupported format, use svg, png or dot")
var ErrEmptyRanking = errors.New("nothing to render")
