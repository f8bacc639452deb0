package models

import (
	"cmp"
	"fmt"
	"strings"
)

// a map that associates each vertex with its corrisponding rank value
type RankMap[ID cmp.Ordered] map[ID]float64

// Ranked is one entry of a ranking: a vertex with its final score.
type Ranked[ID cmp.Ordered] struct {
	ID       ID      `json:"id"`
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	OutLinks []ID    `json:"out_links"`
}

// FormatLinks() joins the out-links with commas, the format used by every
// text representation of a ranking.
func FormatLinks[ID cmp.Ordered](links []ID) string {
	strLinks := make([]string, len(links))
	for i, link := range links {
		strLinks[i] = fmt.Sprint(link)
	}
	return strings.Join(strLinks, ",")
}

// ParseLinks() parses a string produced by FormatLinks. The empty string
// returns an empty slice.
func ParseLinks(strLinks string) []string {
	if len(strLinks) == 0 {
		return []string{}
	}
	return strings.Split(strLinks, ",")
}
