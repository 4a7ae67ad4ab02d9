package pep8

import "strings"

// enforceBlankLines applies the blank-line policy: two blank lines before a
// top-level def/class (decorators included), one before a method def, no
// trailing blank lines at the end of the file.
func enforceBlankLines(doc *document, _ Options) {
	lines := doc.lines
	out := make([]srcLine, 0, len(lines))
	i := 0

	for i < len(lines) {
		ln := lines[i]
		if !ln.inString && isTopLevelDefOrClass(lines, i) {
			// срезаем накопленные пустые и ставим ровно две
			for len(out) > 0 && isBlankLine(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
			if len(out) > 0 {
				out = append(out, srcLine{}, srcLine{})
			}
			for i < len(lines) && !lines[i].inString && isDecorator(lines[i].text) {
				out = append(out, lines[i])
				i++
			}
			if i < len(lines) {
				out = append(out, lines[i])
				i++
			}
			continue
		}
		if !ln.inString && isMethodDef(ln.text) && len(out) > 0 && !isBlankLine(out[len(out)-1]) {
			out = append(out, srcLine{})
		}
		out = append(out, ln)
		i++
	}

	for len(out) > 0 && isBlankLine(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	doc.lines = out
}

func isBlankLine(ln srcLine) bool {
	return !ln.inString && strings.TrimSpace(ln.text) == ""
}

func isDecorator(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "@")
}

// isTopLevelDefOrClass reports whether line i starts a top-level definition,
// looking through a decorator chain.
func isTopLevelDefOrClass(lines []srcLine, i int) bool {
	line := lines[i].text
	if isDecorator(line) {
		if indentOf(line) != "" {
			return false
		}
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j].text) == "" {
			j++
		}
		if j < len(lines) && !lines[j].inString {
			return startsDef(lines[j].text)
		}
		return false
	}
	return startsDef(line)
}

func startsDef(line string) bool {
	return strings.HasPrefix(line, "def ") ||
		strings.HasPrefix(line, "class ") ||
		strings.HasPrefix(line, "async def ")
}

// isMethodDef — `def` с отступом, то есть внутри класса или функции.
func isMethodDef(line string) bool {
	ind := indentOf(line)
	if ind == "" {
		return false
	}
	rest := line[len(ind):]
	return strings.HasPrefix(rest, "def ") || strings.HasPrefix(rest, "async def ")
}
