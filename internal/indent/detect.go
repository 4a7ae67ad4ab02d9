package indent

import (
	"retab/internal/lineclass"
	"retab/internal/scan"
)

// detectTabs reports whether tab-led indentation dominates the file's
// statements. Blank lines carry no vote.
func detectTabs(lines []scan.LogicalLine) bool {
	tabLed := 0
	spaceLed := 0
	for i := range lines {
		if lines[i].Class == lineclass.Blank {
			continue
		}
		ind := lines[i].Indent()
		if ind == "" {
			continue
		}
		if ind[0] == '\t' {
			tabLed++
		} else {
			spaceLed++
		}
	}
	return tabLed > spaceLed
}

// detectWidth finds the positive width increment that occurs most often
// between consecutive statements, measured with the given tab width. The
// result is advisory: it feeds the continuer depth heuristic, never the
// healer thresholds, which are defined in canonical units. Falls back to
// the canonical width when the file shows no indentation at all.
func detectWidth(lines []scan.LogicalLine, tabW, fallback int) int {
	deltas := make(map[int]int)
	prev := 0
	for i := range lines {
		if lines[i].Class == lineclass.Blank || lines[i].Class == lineclass.Comment {
			continue
		}
		w := indentWidth(lines[i].Indent(), tabW)
		if w > prev {
			deltas[w-prev]++
		}
		prev = w
	}

	width := fallback
	best := 0
	for d, n := range deltas {
		if n > best || (n == best && d < width) {
			best = n
			width = d
		}
	}
	if width <= 0 {
		width = fallback
	}
	return width
}
