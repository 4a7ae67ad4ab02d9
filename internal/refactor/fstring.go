package refactor

import (
	"fmt"
	"strconv"
	"strings"

	"retab/internal/diag"
	"retab/internal/pytext"
	"retab/internal/scan"
	"retab/internal/source"
)

// ConvertFStrings rewrites `.format(...)` calls and `%`-formatting into
// f-strings when every argument is a plain identifier and every field maps
// cleanly. Anything with expressions, nesting, raw/byte prefixes or
// mismatched field counts stays untouched.
func ConvertFStrings(file *source.File, rep diag.Reporter) Result {
	res := scan.Scan(file, scan.Options{})
	inString := make(map[int]bool)
	for i := range res.Lines {
		for _, p := range res.Lines[i].Phys {
			if p.InString {
				inString[p.Num] = true
			}
		}
	}

	lines, hadFinalEOL := splitLines(file)
	changed := 0
	for num := range lines {
		if inString[num+1] {
			continue
		}
		out, n := convertLine(lines[num])
		if n > 0 {
			lines[num] = out
			changed += n
			if rep != nil {
				diag.ReportInfo(rep, diag.RefFString, source.Span{File: file.ID},
					fmt.Sprintf("line %d: converted to f-string", num+1))
			}
		}
	}
	if changed == 0 {
		return Result{Output: file.Content}
	}
	return Result{Output: joinLines(file, lines, hadFinalEOL), Changed: changed}
}

func convertLine(line string) (string, int) {
	segs := pytext.Split(line)
	converted := 0
	for i := range segs {
		if segs[i].Kind != pytext.SegString {
			continue
		}
		prefix, quote, body, ok := parseLiteral(segs[i].Text)
		if !ok || prefix != "" {
			continue
		}
		if i+1 >= len(segs) || segs[i+1].Kind != pytext.SegCode {
			continue
		}
		next := segs[i+1].Text

		if rest, okf := strings.CutPrefix(next, ".format("); okf {
			templ, tail, okc := convertFormatCall(body, rest)
			if okc {
				segs[i].Text = "f" + quote + templ + quote
				segs[i+1].Text = tail
				converted++
				continue
			}
		}
		if templ, tail, okp := convertPercent(body, next); okp {
			segs[i].Text = "f" + quote + templ + quote
			segs[i+1].Text = tail
			converted++
		}
	}
	if converted == 0 {
		return line, 0
	}
	return pytext.Join(segs), converted
}

// parseLiteral splits a literal into prefix, quote (single or triple) and
// body. Unterminated literals report !ok.
func parseLiteral(text string) (prefix, quote, body string, ok bool) {
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		i++
	}
	if i == len(text) {
		return "", "", "", false
	}
	prefix = strings.ToLower(text[:i])
	rest := text[i:]
	q := string(rest[0])
	if strings.HasPrefix(rest, strings.Repeat(q, 3)) {
		quote = strings.Repeat(q, 3)
	} else {
		quote = q
	}
	if len(rest) < 2*len(quote) || !strings.HasSuffix(rest, quote) {
		return "", "", "", false
	}
	return prefix, quote, rest[len(quote) : len(rest)-len(quote)], true
}

// convertFormatCall maps `"...{field}...".format(args)` onto an f-string
// template. args must be plain identifiers or ident=ident pairs and live
// entirely before the first closing parenthesis.
func convertFormatCall(body, argsAndTail string) (templ, tail string, ok bool) {
	close := strings.IndexByte(argsAndTail, ')')
	if close < 0 {
		return "", "", false
	}
	argStr := argsAndTail[:close]
	if strings.ContainsAny(argStr, "()[]{}") {
		return "", "", false
	}
	var pos []string
	kw := make(map[string]string)
	for _, a := range strings.Split(argStr, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if k, v, isKw := strings.Cut(a, "="); isKw {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if !isIdent(k) || !isIdent(v) {
				return "", "", false
			}
			kw[k] = v
			continue
		}
		if !isIdent(a) {
			return "", "", false
		}
		pos = append(pos, a)
	}
	if len(pos) == 0 && len(kw) == 0 {
		return "", "", false
	}

	var b strings.Builder
	auto := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '{' && i+1 < len(body) && body[i+1] == '{':
			b.WriteString("{{")
			i++
		case c == '}' && i+1 < len(body) && body[i+1] == '}':
			b.WriteString("}}")
			i++
		case c == '{':
			end := strings.IndexByte(body[i:], '}')
			if end < 0 {
				return "", "", false
			}
			field := body[i+1 : i+end]
			expr, fieldOK := mapField(field, pos, kw, &auto)
			if !fieldOK {
				return "", "", false
			}
			b.WriteString(expr)
			i += end
		case c == '}':
			return "", "", false // непарная скобка
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), argsAndTail[close+1:], true
}

// mapField resolves one `{key:spec}` field to the argument it names.
func mapField(field string, pos []string, kw map[string]string, auto *int) (string, bool) {
	key := field
	spec := ""
	if idx := strings.IndexAny(field, ":!"); idx >= 0 {
		key, spec = field[:idx], field[idx:]
	}
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		if *auto >= len(pos) {
			return "", false
		}
		expr := pos[*auto]
		*auto++
		return "{" + expr + spec + "}", true
	case isDigits(key):
		n, _ := strconv.Atoi(key)
		if n < 0 || n >= len(pos) {
			return "", false
		}
		return "{" + pos[n] + spec + "}", true
	default:
		if v, okKw := kw[key]; okKw {
			return "{" + v + spec + "}", true
		}
		for _, p := range pos {
			if p == key {
				return "{" + key + spec + "}", true
			}
		}
		return "", false
	}
}

// convertPercent maps `"...%s..." % rhs` onto an f-string when the rhs is a
// bare identifier or a flat tuple of identifiers and the spec count matches.
func convertPercent(body, code string) (templ, tail string, ok bool) {
	rest := strings.TrimLeft(code, " \t")
	if !strings.HasPrefix(rest, "%") {
		return "", "", false
	}
	rhs := strings.TrimLeft(rest[1:], " \t")

	var names []string
	if strings.HasPrefix(rhs, "(") {
		close := strings.IndexByte(rhs, ')')
		if close < 0 {
			return "", "", false
		}
		for _, p := range strings.Split(rhs[1:close], ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !isIdent(p) {
				return "", "", false
			}
			names = append(names, p)
		}
		tail = rhs[close+1:]
	} else {
		n := identPrefix(rhs)
		if n == 0 {
			return "", "", false
		}
		names = []string{rhs[:n]}
		tail = rhs[n:]
	}
	if len(names) == 0 {
		return "", "", false
	}

	var b strings.Builder
	idx := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '%':
			if i+1 < len(body) && body[i+1] == '%' {
				b.WriteByte('%')
				i++
				continue
			}
			j := i + 1
			if j < len(body) && body[j] == '.' {
				j++
				for j < len(body) && body[j] >= '0' && body[j] <= '9' {
					j++
				}
			}
			if j >= len(body) || !strings.ContainsRune("srdfige", rune(body[j])) {
				return "", "", false
			}
			if idx >= len(names) {
				return "", "", false
			}
			conv := ""
			if body[j] == 'r' {
				conv = "!r"
			}
			b.WriteString("{" + names[idx] + conv + "}")
			idx++
			i = j
		case '{':
			b.WriteString("{{")
		case '}':
			b.WriteString("}}")
		default:
			b.WriteByte(c)
		}
	}
	if idx != len(names) {
		return "", "", false
	}
	return b.String(), tail, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func identPrefix(s string) int {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return i
}
