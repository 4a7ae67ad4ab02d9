package pep8

import (
	"strings"

	"retab/internal/pytext"
)

// binaryOps are the operators that get one space on each side. Longest
// first, so `==` never matches as two `=`. Single-character arithmetic
// operators stay untouched: without a real expression parser a leading
// `-` or `*` is too often unary.
var binaryOps = []string{
	"**=", "//=", "<<=", ">>=",
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "->",
}

// spaceOperators normalizes spacing around binary operators and tightens
// keyword-argument `=` inside call parentheses. Bracket depth carries
// across string literals, so `f(a=g("x"), b=1)` resolves both kwargs.
func spaceOperators(doc *document, _ Options) {
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

		segs := pytext.Split(rest)
		depth := 0
		for j := range segs {
			if segs[j].Kind == pytext.SegCode {
				segs[j].Text, depth = spaceCodeOps(segs[j].Text, depth)
			}
		}
		doc.lines[i].text = indent + pytext.Join(segs)
	}
}

// spaceCodeOps rewrites one code segment; depth is the bracket nesting at
// its start and is returned for the next segment of the same line.
func spaceCodeOps(code string, depth int) (string, int) {
	var b strings.Builder
	i := 0
	for i < len(code) {
		c := code[i]
		switch c {
		case '(', '[', '{':
			depth++
			b.WriteByte(c)
			i++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
			b.WriteByte(c)
			i++
			continue
		}

		if op, n := matchOp(code, i); n > 0 {
			trimTrailingSpaces(&b)
			if op == "=" && depth > 0 {
				// kwarg: плотно, без пробелов
				b.WriteString("=")
			} else {
				b.WriteString(" " + op + " ")
			}
			i += n
			// съедаем пробелы после оператора, пробел уже записан
			for i < len(code) && (code[i] == ' ' || code[i] == '\t') {
				i++
			}
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String(), depth
}

// matchOp reports which operator starts at position i, if any. Walrus and
// comparison composites are recognized before their prefixes; `=` matches
// only when it is not part of `==`, `<=` and friends.
func matchOp(code string, i int) (string, int) {
	rest := code[i:]
	for _, op := range binaryOps {
		if strings.HasPrefix(rest, op) {
			return op, len(op)
		}
	}
	if rest[0] != '=' {
		return "", 0
	}
	// одиночный '=': исключаем ==, :=, <=, >=, !=, += и прочие
	if len(rest) > 1 && rest[1] == '=' {
		return "", 0
	}
	if i > 0 {
		switch code[i-1] {
		case '=', '!', '<', '>', '+', '-', '*', '/', '%', ':', '~', '^', '|', '&', '@':
			return "", 0
		}
	}
	return "=", 1
}

// trimTrailingSpaces drops spaces already written before an operator.
func trimTrailingSpaces(b *strings.Builder) {
	s := b.String()
	trimmed := strings.TrimRight(s, " \t")
	if len(trimmed) != len(s) {
		b.Reset()
		b.WriteString(trimmed)
	}
}
