package refactor

import (
	"fmt"
	"strings"

	"retab/internal/diag"
	"retab/internal/lineclass"
	"retab/internal/scan"
	"retab/internal/source"
)

// SimplifyBoolReturns rewrites the four-line pattern
//
//	if cond:
//	    return True
//	else:
//	    return False
//
// into `return bool(cond)` (negated constants give `return not bool(cond)`).
// Both suites must hold exactly one statement; anything fancier stays.
func SimplifyBoolReturns(file *source.File, rep diag.Reporter) Result {
	res := scan.Scan(file, scan.Options{})
	if res.UnclosedBracket != nil || res.UnclosedString != nil {
		return Result{Output: file.Content}
	}

	lines, hadFinalEOL := splitLines(file)
	changed := 0

	for i := 0; i+3 < len(res.Lines); i++ {
		ifLine := &res.Lines[i]
		thenLine := &res.Lines[i+1]
		elseLine := &res.Lines[i+2]
		otherLine := &res.Lines[i+3]

		if ifLine.Class != lineclass.Opener || ifLine.Keyword != lineclass.KwIf {
			continue
		}
		cond, ok := condOf(ifLine.Content())
		if !ok {
			continue
		}
		thenVal, ok := returnConst(thenLine)
		if !ok {
			continue
		}
		if elseLine.Class != lineclass.Continuer || elseLine.Keyword != lineclass.KwElse ||
			elseLine.Content() != "else:" {
			continue
		}
		otherVal, ok := returnConst(otherLine)
		if !ok || thenVal == otherVal {
			continue
		}

		ifIndent := ifLine.Indent()
		bodyIndent := thenLine.Indent()
		if len(bodyIndent) <= len(ifIndent) ||
			elseLine.Indent() != ifIndent ||
			otherLine.Indent() != bodyIndent {
			continue
		}
		// обе ветки — ровно по одному оператору
		if i+4 < len(res.Lines) {
			next := &res.Lines[i+4]
			if next.Class != lineclass.Blank && len(next.Indent()) > len(ifIndent) {
				continue
			}
		}

		repl := ifIndent + "return bool(" + cond + ")"
		if !thenVal {
			repl = ifIndent + "return not bool(" + cond + ")"
		}

		start := ifLine.First().Num - 1 // 0-based
		end := otherLine.First().Num    // exclusive
		lines = append(lines[:start+1], lines[end:]...)
		lines[start] = repl
		changed++
		if rep != nil {
			diag.ReportInfo(rep, diag.RefBoolReturn, ifLine.Span,
				fmt.Sprintf("line %d: boolean return pair simplified", start+1))
		}

		// Сканируем заново: номера строк после правки сдвинулись.
		res = rescan(file, lines, hadFinalEOL)
		i = -1
	}

	if changed == 0 {
		return Result{Output: file.Content}
	}
	return Result{Output: joinLines(file, lines, hadFinalEOL), Changed: changed}
}

// rescan rebuilds logical lines over the edited buffer.
func rescan(file *source.File, lines []string, hadFinalEOL bool) *scan.Result {
	text := strings.Join(lines, "\n")
	if hadFinalEOL {
		text += "\n"
	}
	tmp := source.NewFileSet()
	f := tmp.Get(tmp.AddVirtual(file.Path, []byte(text)))
	return scan.Scan(f, scan.Options{})
}

// condOf extracts the condition from a single-line `if cond:` header.
func condOf(content string) (string, bool) {
	if !strings.HasPrefix(content, "if ") || !strings.HasSuffix(content, ":") {
		return "", false
	}
	cond := strings.TrimSpace(content[3 : len(content)-1])
	if cond == "" {
		return "", false
	}
	return cond, true
}

// returnConst recognizes a bare `return True` / `return False` statement.
func returnConst(ll *scan.LogicalLine) (val bool, ok bool) {
	if ll.Class != lineclass.Plain || len(ll.Phys) != 1 {
		return false, false
	}
	switch ll.Content() {
	case "return True":
		return true, true
	case "return False":
		return false, true
	}
	return false, false
}
