package pep8

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"retab/internal/pytext"
)

// normalizeComments enforces the comment conventions: full-line comments
// start with `# `, inline comments sit two spaces after the code, and
// overlong full-line comments re-flow at the comment width. Shebang and
// coding cookies pass through untouched.
func normalizeComments(doc *document, opts Options) {
	out := make([]srcLine, 0, len(doc.lines))
	for _, ln := range doc.lines {
		if ln.inString {
			out = append(out, ln)
			continue
		}
		line := ln.text
		indent := indentOf(line)
		rest := line[len(indent):]

		if strings.HasPrefix(rest, "#") {
			if isCommentCookie(rest) {
				out = append(out, srcLine{text: strings.TrimRight(line, " \t")})
				continue
			}
			content := strings.TrimLeft(rest[1:], " ")
			for _, piece := range reflow(content, opts.CommentWidth) {
				text := indent + "#"
				if piece != "" {
					text += " " + piece
				}
				out = append(out, srcLine{text: text})
			}
			continue
		}

		out = append(out, srcLine{text: tightenInlineComment(line)})
	}
	doc.lines = out
}

// isCommentCookie — shebang, кодировка и editor-маркеры не трогаем.
func isCommentCookie(comment string) bool {
	return strings.HasPrefix(comment, "#!") ||
		strings.HasPrefix(comment, "# -*-") ||
		strings.HasPrefix(comment, "# coding") ||
		strings.HasPrefix(comment, "#coding")
}

// tightenInlineComment normalizes `code # note` into `code  # note`.
func tightenInlineComment(line string) string {
	segs := pytext.Split(line)
	if len(segs) == 0 || segs[len(segs)-1].Kind != pytext.SegComment {
		return line
	}
	last := len(segs) - 1
	comment := strings.TrimLeft(segs[last].Text[1:], " ")
	code := strings.TrimRight(pytext.Join(segs[:last]), " \t")
	if code == "" {
		return line
	}
	if comment == "" {
		return code + "  #"
	}
	return code + "  # " + comment
}

// reflow wraps text at the given display width on word boundaries, never
// breaking words. Width is measured with runewidth, so wide runes count
// for two columns.
func reflow(text string, width int) []string {
	if text == "" {
		return []string{""}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	cur := words[0]
	curW := runewidth.StringWidth(cur)
	for _, w := range words[1:] {
		ww := runewidth.StringWidth(w)
		if curW+1+ww > width {
			out = append(out, cur)
			cur = w
			curW = ww
			continue
		}
		cur += " " + w
		curW += 1 + ww
	}
	out = append(out, cur)
	return out
}
