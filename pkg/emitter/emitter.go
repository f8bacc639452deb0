// The emitter package turns the final scores of a computation into a ranking,
// and writes it in the tab-separated output format.
package emitter

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/vertex-lab/linkrank/pkg/models"
)

// Rank() returns one entry per vertex of the graph, sorted by score descending.
// Equal scores are sorted by identifier ascending. Vertices missing from
// scores are ranked with a score of zero. Dangling vertices get an empty,
// non-nil OutLinks.
func Rank[ID cmp.Ordered](graph *models.Graph[ID], scores models.RankMap[ID]) []models.Ranked[ID] {
	ranked := make([]models.Ranked[ID], 0, graph.Size())
	for pos := 0; pos < graph.Size(); pos++ {
		vertex := graph.At(pos)
		links := vertex.OutLinks
		if links == nil {
			links = []ID{}
		}

		ranked = append(ranked, models.Ranked[ID]{
			ID:       vertex.ID,
			Label:    vertex.Label,
			Score:    scores[vertex.ID],
			OutLinks: links,
		})
	}

	slices.SortFunc(ranked, func(a, b models.Ranked[ID]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return ranked
}

// Write() writes one line per entry:
//
//	<id>\t<score>[\t<comma-joined out-links>]
//
// The score has 6 decimal places. The out-links field is omitted when the
// vertex has no out-links.
func Write[ID cmp.Ordered](w io.Writer, ranked []models.Ranked[ID]) error {
	buf := bufio.NewWriter(w)
	for _, entry := range ranked {
		var err error
		if len(entry.OutLinks) == 0 {
			_, err = fmt.Fprintf(buf, "%v\t%.6f\n", entry.ID, entry.Score)
		} else {
			_, err = fmt.Fprintf(buf, "%v\t%.6f\t%s\n", entry.ID, entry.Score, models.FormatLinks(entry.OutLinks))
		}

		if err != nil {
			return fmt.Errorf("failed to write %v: %w", entry.ID, err)
		}
	}

	return buf.Flush()
}

// Top() returns the first n entries of the ranking, or all of them if there are fewer.
func Top[ID cmp.Ordered](ranked []models.Ranked[ID], n int) []models.Ranked[ID] {
	if n < 0 {
		return nil
	}
	return ranked[:min(n, len(ranked))]
}
