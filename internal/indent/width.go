package indent

import (
	"strings"
)

// indentWidth returns the apparent column width of leading whitespace,
// expanding tabs to the next tab stop (str.expandtabs semantics).
func indentWidth(indent string, tabWidth int) int {
	w := 0
	for i := 0; i < len(indent); i++ {
		if indent[i] == '\t' {
			w += tabWidth - w%tabWidth
		} else {
			w++
		}
	}
	return w
}

// needsTabNormalize reports whether leading whitespace mixes tabs and
// spaces, or uses a character the canonical unit does not. Normalization
// itself happens implicitly: widths are always computed on the expanded
// form, and the emitter writes pure canonical units. This predicate only
// decides whether the line gets a RepairTabNormalize event.
func needsTabNormalize(indent, unit string) bool {
	hasTab := strings.IndexByte(indent, '\t') >= 0
	hasSpace := strings.IndexByte(indent, ' ') >= 0
	if hasTab && hasSpace {
		return true
	}
	unitTab := strings.IndexByte(unit, '\t') >= 0
	if hasTab && !unitTab {
		return true
	}
	if hasSpace && unitTab {
		return true
	}
	return false
}
