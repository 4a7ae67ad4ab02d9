// Package diffview рендерит построчный diff «до/после» для режима
// предпросмотра: удаления красным, вставки зелёным, контекст приглушён.
package diffview

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	delColor = color.New(color.FgRed)
	insColor = color.New(color.FgGreen)
	ctxColor = color.New(color.Faint)
	hdrColor = color.New(color.FgCyan, color.Bold)
)

// contextLines is how many equal lines survive around each change.
const contextLines = 2

type rowTag int

const (
	rowEqual rowTag = iota
	rowDelete
	rowInsert
)

type row struct {
	tag  rowTag
	text string
}

// Unified renders a unified-style diff between before and after. An empty
// string means the two are identical. Coloring follows the global
// color.NoColor switch.
func Unified(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	rows := diffRows(string(before), string(after))

	var b strings.Builder
	b.WriteString(hdrColor.Sprintf("--- %s", path))
	b.WriteByte('\n')
	b.WriteString(hdrColor.Sprintf("+++ %s (rewritten)", path))
	b.WriteByte('\n')

	oldNum, newNum := 1, 1
	skipping := false
	for i, r := range rows {
		switch r.tag {
		case rowEqual:
			if nearChange(rows, i) {
				if skipping {
					b.WriteString(ctxColor.Sprintf("@@ -%d +%d @@", oldNum, newNum))
					b.WriteByte('\n')
					skipping = false
				}
				b.WriteString(ctxColor.Sprintf("  %s", r.text))
				b.WriteByte('\n')
			} else {
				skipping = true
			}
			oldNum++
			newNum++
		case rowDelete:
			b.WriteString(delColor.Sprintf("- %s", r.text))
			b.WriteByte('\n')
			oldNum++
		case rowInsert:
			b.WriteString(insColor.Sprintf("+ %s", r.text))
			b.WriteByte('\n')
			newNum++
		}
	}
	return b.String()
}

// Stat returns a one-line summary like "3 insertions, 1 deletion".
func Stat(before, after []byte) string {
	ins, del := 0, 0
	for _, r := range diffRows(string(before), string(after)) {
		switch r.tag {
		case rowInsert:
			ins++
		case rowDelete:
			del++
		}
	}
	return fmt.Sprintf("+%d -%d", ins, del)
}

// diffRows computes a character diff and folds it back into line rows.
func diffRows(before, after string) []row {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var rows []row
	var oldBuf, newBuf []string

	flush := func() {
		for _, l := range oldBuf {
			rows = append(rows, row{tag: rowDelete, text: l})
		}
		for _, l := range newBuf {
			rows = append(rows, row{tag: rowInsert, text: l})
		}
		oldBuf, newBuf = nil, nil
	}

	// Посимвольный diff режем по переводам строки; неполные хвосты
	// копятся в буферах до ближайшего полного ряда.
	var oldTail, newTail string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			parts := strings.Split(oldTail+d.Text, "\n")
			partsNew := strings.Split(newTail+d.Text, "\n")
			if len(parts) == 1 {
				oldTail += d.Text
				newTail += d.Text
				continue
			}
			// первый кусок завершает начатые строки обеих сторон
			if oldTail != "" || newTail != "" {
				oldBuf = append(oldBuf, parts[0])
				newBuf = append(newBuf, partsNew[0])
				flush()
			} else {
				flush()
				rows = append(rows, row{tag: rowEqual, text: parts[0]})
			}
			for _, l := range parts[1 : len(parts)-1] {
				rows = append(rows, row{tag: rowEqual, text: l})
			}
			oldTail = parts[len(parts)-1]
			newTail = oldTail
		case diffmatchpatch.DiffDelete:
			parts := strings.Split(oldTail+d.Text, "\n")
			for _, l := range parts[:len(parts)-1] {
				oldBuf = append(oldBuf, l)
			}
			oldTail = parts[len(parts)-1]
		case diffmatchpatch.DiffInsert:
			parts := strings.Split(newTail+d.Text, "\n")
			for _, l := range parts[:len(parts)-1] {
				newBuf = append(newBuf, l)
			}
			newTail = parts[len(parts)-1]
		}
	}
	if oldTail != "" || newTail != "" {
		if oldTail == newTail {
			flush()
			rows = append(rows, row{tag: rowEqual, text: oldTail})
		} else {
			if oldTail != "" {
				oldBuf = append(oldBuf, oldTail)
			}
			if newTail != "" {
				newBuf = append(newBuf, newTail)
			}
			flush()
		}
	} else {
		flush()
	}
	return rows
}

// nearChange reports whether an equal row sits within the context window of
// any non-equal row.
func nearChange(rows []row, i int) bool {
	lo := i - contextLines
	if lo < 0 {
		lo = 0
	}
	hi := i + contextLines
	if hi >= len(rows) {
		hi = len(rows) - 1
	}
	for j := lo; j <= hi; j++ {
		if rows[j].tag != rowEqual {
			return true
		}
	}
	return false
}
