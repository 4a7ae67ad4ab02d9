package pep8

import (
	"regexp"
	"strings"

	"retab/internal/pytext"
)

// Пробельные мелочи из PEP 8: вызов без пробела перед скобкой, индексация
// без пробела, запятая прижата слева и с одним пробелом справа.
var (
	reCallSpace  = regexp.MustCompile(`([A-Za-z0-9_\])])[ \t]+\(`)
	reIndexSpace = regexp.MustCompile(`([A-Za-z0-9_\])])[ \t]+\[`)
	reSpaceComma = regexp.MustCompile(`[ \t]+,`)
	reCommaSpace = regexp.MustCompile(`,[ \t]*([^ \t)\]}])`)
	reCommaClose = regexp.MustCompile(`,[ \t]+([)\]}])`)
	reManySpaces = regexp.MustCompile(`[ \t]{2,}`)
)

func petPeeves(doc *document, _ Options) {
	for i := range doc.lines {
		if doc.lines[i].inString {
			continue
		}
		line := doc.lines[i].text
		indent := indentOf(line)
		rest := line[len(indent):]
		if rest == "" || strings.HasPrefix(rest, "#") {
			continue
		}
		rest = pytext.MapCode(rest, fixPeeves)
		doc.lines[i].text = indent + rest
	}
}

func fixPeeves(code string) string {
	code = reCallSpace.ReplaceAllString(code, "$1(")
	code = reIndexSpace.ReplaceAllString(code, "$1[")
	code = reSpaceComma.ReplaceAllString(code, ",")
	code = reCommaSpace.ReplaceAllString(code, ", $1")
	code = reCommaClose.ReplaceAllString(code, ",$1")
	code = reManySpaces.ReplaceAllString(code, " ")
	return code
}
