package refactor

import (
	"fmt"
	"regexp"
	"strings"

	"retab/internal/diag"
	"retab/internal/lineclass"
	"retab/internal/pytext"
	"retab/internal/scan"
	"retab/internal/source"
)

var reIdent = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// RemoveUnusedImports drops names from single-line top-level imports that
// never appear elsewhere in the file. `__future__` and star imports always
// survive; parenthesized import blocks pass through untouched.
func RemoveUnusedImports(file *source.File, rep diag.Reporter) Result {
	res := scan.Scan(file, scan.Options{})
	if res.UnclosedBracket != nil || res.UnclosedString != nil {
		return Result{Output: file.Content}
	}

	// Какие строки — одиночные импорты верхнего уровня.
	importLine := make(map[int]*scan.LogicalLine) // физический номер -> строка
	for i := range res.Lines {
		ll := &res.Lines[i]
		if ll.Class != lineclass.Plain || ll.Indent() != "" || len(ll.Phys) != 1 {
			continue
		}
		c := ll.Content()
		if strings.HasPrefix(c, "import ") || strings.HasPrefix(c, "from ") {
			importLine[ll.First().Num] = ll
		}
	}
	if len(importLine) == 0 {
		return Result{Output: file.Content}
	}

	// Все идентификаторы вне импортов и вне литералов считаются использованием.
	used := make(map[string]bool)
	for i := range res.Lines {
		ll := &res.Lines[i]
		if _, isImp := importLine[ll.First().Num]; isImp {
			continue
		}
		for _, p := range ll.Phys {
			if p.InString {
				continue
			}
			for _, id := range reIdent.FindAllString(pytext.StripLiterals(p.Content), -1) {
				used[id] = true
			}
		}
	}

	lines, hadFinalEOL := splitLines(file)
	out := make([]string, 0, len(lines))
	changed := 0
	for num, line := range lines {
		ll, isImp := importLine[num+1]
		if !isImp {
			out = append(out, line)
			continue
		}
		kept, removed := pruneImport(ll.Content(), used)
		if removed == 0 {
			out = append(out, line)
			continue
		}
		changed += removed
		if rep != nil {
			diag.ReportInfo(rep, diag.RefUnusedRemoved, ll.Span,
				fmt.Sprintf("line %d: removed %d unused import name(s)", num+1, removed))
		}
		if kept != "" {
			out = append(out, kept)
		}
	}
	if changed == 0 {
		return Result{Output: file.Content}
	}
	return Result{Output: joinLines(file, out, hadFinalEOL), Changed: changed}
}

// pruneImport rewrites one import statement keeping only used names.
// Returns the new line ("" when nothing survives) and how many names fell.
func pruneImport(content string, used map[string]bool) (string, int) {
	code := content
	comment := ""
	if segs := pytext.Split(content); len(segs) > 0 && segs[len(segs)-1].Kind == pytext.SegComment {
		last := segs[len(segs)-1]
		code = strings.TrimRight(content[:len(content)-len(last.Text)], " \t")
		comment = "  " + last.Text
	}

	switch {
	case strings.HasPrefix(code, "import "):
		names := strings.Split(code[len("import "):], ",")
		var kept []string
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if importNameUsed(n, used) {
				kept = append(kept, n)
			}
		}
		removed := countNames(names) - len(kept)
		if len(kept) == 0 {
			return "", removed
		}
		return "import " + strings.Join(kept, ", ") + comment, removed

	case strings.HasPrefix(code, "from "):
		head, names, ok := strings.Cut(code, " import ")
		if !ok || strings.HasPrefix(strings.TrimSpace(names), "(") {
			return content, 0
		}
		if strings.HasSuffix(head, "__future__") {
			return content, 0
		}
		parts := strings.Split(names, ",")
		var kept []string
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if p == "*" || importNameUsed(p, used) {
				kept = append(kept, p)
			}
		}
		removed := countNames(parts) - len(kept)
		if len(kept) == 0 {
			return "", removed
		}
		return head + " import " + strings.Join(kept, ", ") + comment, removed
	}
	return content, 0
}

// importNameUsed resolves `pkg.sub as alias` to the name the code would
// reference and checks usage.
func importNameUsed(spec string, used map[string]bool) bool {
	name := spec
	if _, alias, ok := cutAs(spec); ok {
		name = alias
	}
	root := strings.SplitN(name, ".", 2)[0]
	return used[root]
}

func cutAs(spec string) (name, alias string, ok bool) {
	fields := strings.Fields(spec)
	if len(fields) == 3 && fields[1] == "as" {
		return fields[0], fields[2], true
	}
	return spec, "", false
}

func countNames(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
