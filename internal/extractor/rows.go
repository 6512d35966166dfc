package extractor

import (
	"math"
	"sort"
	"strings"
)

// TextRun is a piece of text drawn at a position on the page. PDF
// coordinates start at the bottom-left corner.
type TextRun struct {
	X float64
	Y float64
	S string
}

// Reconstruct rebuilds the visual lines of one page. Runs whose Y rounds to
// the same integer form a row; that absorbs sub-unit jitter inside one
// visual line. Runs in a row keep their incoming order and are joined with
// single spaces. Rows are emitted top to bottom (descending Y).
func Reconstruct(runs []TextRun) string {
	rowMap := make(map[int][]string)
	for _, t := range runs {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], s)
	}

	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	lines := make([]string, 0, len(yKeys))
	for _, y := range yKeys {
		lines = append(lines, strings.Join(rowMap[y], " "))
	}
	return strings.Join(lines, "\n")
}
