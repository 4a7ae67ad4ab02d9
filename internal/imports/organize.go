package imports

import (
	"regexp"
	"sort"
	"strings"

	"retab/internal/diag"
	"retab/internal/lineclass"
	"retab/internal/scan"
	"retab/internal/source"
)

type group uint8

const (
	groupStdlib group = iota
	groupThird
	groupLocal
)

// importLine is one single-line top-level import prepared for sorting.
type importLine struct {
	group group
	text  string
	key   string
}

var (
	rePlainImport = regexp.MustCompile(`^import\s+([A-Za-z_][A-Za-z0-9_.]*)`)
	reFromImport  = regexp.MustCompile(`^from\s+([.A-Za-z_][A-Za-z0-9_.]*)\s+import\s`)
	reSpaces      = regexp.MustCompile(`\s+`)
)

// importRoot returns the leading module path of an import statement, or ""
// when the line is not a single-line import.
func importRoot(content string) string {
	if m := rePlainImport.FindStringSubmatch(content); m != nil {
		return strings.SplitN(m[1], ".", 2)[0]
	}
	if m := reFromImport.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

func classify(root string) group {
	if strings.HasPrefix(root, ".") {
		return groupLocal
	}
	top := strings.SplitN(root, ".", 2)[0]
	if stdlibModules[top] {
		return groupStdlib
	}
	return groupThird
}

func sortKey(content string) string {
	return strings.ToLower(reSpaces.ReplaceAllString(strings.TrimSpace(content), " "))
}

func isFuture(content string) bool {
	return strings.HasPrefix(content, "from __future__ ")
}

// Organize reorders the first top-level import block into stdlib /
// third-party / local groups. Comments, parenthesized imports and anything
// after the block stay where they are; when nothing changes the original
// bytes come back untouched.
func Organize(file *source.File, rep diag.Reporter) []byte {
	res := scan.Scan(file, scan.Options{})
	if res.UnclosedBracket != nil || res.UnclosedString != nil {
		return file.Content
	}

	// Ищем непрерывный блок одно-строчных импортов верхнего уровня.
	blockStart := -1
	blockEnd := -1 // последний импорт блока (индекс логической строки)
	var block []importLine
	for i := range res.Lines {
		ll := &res.Lines[i]
		if ll.Class == lineclass.Blank {
			continue // пустые допустимы и до блока, и внутри него
		}
		content := ll.Content()
		isImp := ll.Class == lineclass.Plain &&
			ll.Indent() == "" &&
			len(ll.Phys) == 1 &&
			importRoot(content) != "" &&
			!isFuture(content)
		if isImp {
			if blockStart < 0 {
				blockStart = i
			}
			blockEnd = i
			root := importRoot(content)
			block = append(block, importLine{
				group: classify(root),
				text:  content,
				key:   sortKey(content),
			})
			continue
		}
		if blockStart >= 0 {
			break // блок закончился на первом не-импорте
		}
		// до блока: докстринг, комментарии, __future__ — пропускаем
	}
	if blockStart < 0 || len(block) < 2 {
		return file.Content
	}

	sort.SliceStable(block, func(a, b int) bool {
		if block[a].group != block[b].group {
			return block[a].group < block[b].group
		}
		return block[a].key < block[b].key
	})

	var rebuilt []string
	prev := group(255)
	for _, im := range block {
		if prev != 255 && im.group != prev {
			rebuilt = append(rebuilt, "")
		}
		rebuilt = append(rebuilt, im.text)
		prev = im.group
	}

	// Склейка: физические строки до блока, новый блок, строки после.
	content := string(file.Content)
	hadFinalEOL := strings.HasSuffix(content, "\n")
	raw := strings.Split(content, "\n")
	if hadFinalEOL {
		raw = raw[:len(raw)-1]
	}

	startNum := res.Lines[blockStart].First().Num // 1-based
	endNum := res.Lines[blockEnd].First().Num

	out := make([]string, 0, len(raw))
	out = append(out, raw[:startNum-1]...)
	out = append(out, rebuilt...)
	out = append(out, raw[endNum:]...)

	text := strings.Join(out, file.LineEnding())
	if hadFinalEOL {
		text += file.LineEnding()
	}
	result := []byte(text)

	if string(result) != content && rep != nil {
		diag.ReportInfo(rep, diag.ImpReordered, res.Lines[blockStart].Span,
			"top-level imports reordered into stdlib / third-party / local groups")
	}
	return result
}
