package indent

import (
	"strings"

	"retab/internal/lineclass"
	"retab/internal/scan"
	"retab/internal/source"
)

// emit renders the canonical text from resolved logical lines: every
// statement head at unit×depth, continuation physical lines keeping their
// original offset relative to the head, lines inside triple-quoted strings
// byte for byte. The original line-ending style is restored here.
func emit(file *source.File, lines []scan.LogicalLine, cfg Config, tabW int) []byte {
	eol := file.LineEnding()
	unitW := cfg.UnitWidth()

	out := make([]string, 0, len(lines))
	for i := range lines {
		ll := &lines[i]
		if ll.Class == lineclass.Blank {
			out = append(out, "")
			continue
		}

		head := strings.Repeat(cfg.Unit, ll.Depth)
		out = append(out, head+ll.Content())

		headW := indentWidth(ll.Indent(), tabW)
		for _, p := range ll.Phys[1:] {
			switch {
			case p.InString:
				// Ведущие пробелы здесь — содержимое строки, не отступ.
				out = append(out, string(file.Content[p.Span.Start:p.Span.End]))
			case p.Content == "":
				out = append(out, "")
			default:
				// Продолжение держит свой исходный сдвиг от головы
				// оператора, но никогда не схлопывается до её уровня.
				rel := indentWidth(p.Indent, tabW) - headW
				if rel < 1 {
					rel = unitW
				}
				out = append(out, head+strings.Repeat(" ", rel)+p.Content)
			}
		}
	}

	text := strings.Join(out, eol)
	if n := len(file.Content); n > 0 && file.Content[n-1] == '\n' {
		text += eol
	}
	return []byte(text)
}
