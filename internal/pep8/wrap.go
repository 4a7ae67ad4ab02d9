package pep8

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"retab/internal/diag"
	"retab/internal/pytext"
	"retab/internal/source"
)

// wrapLongLines breaks overlong lines: comments re-flow at the comment
// width, code lines break after commas inside brackets with a four-space
// hanging indent. Lines that offer no safe break point are reported and
// left alone.
func wrapLongLines(doc *document, opts Options) {
	out := make([]srcLine, 0, len(doc.lines))
	for num, ln := range doc.lines {
		if ln.inString || runewidth.StringWidth(ln.text) <= opts.LineLength {
			out = append(out, ln)
			continue
		}
		indent := indentOf(ln.text)
		rest := ln.text[len(indent):]

		if strings.HasPrefix(rest, "#") && !isCommentCookie(rest) {
			content := strings.TrimLeft(rest[1:], " ")
			for _, piece := range reflow(content, opts.CommentWidth) {
				out = append(out, srcLine{text: indent + "# " + piece})
			}
			continue
		}

		pieces := breakAtCommas(ln.text, indent, opts.LineLength)
		if pieces == nil {
			if opts.Reporter != nil {
				diag.ReportInfo(opts.Reporter, diag.FmtLineTooLong, source.Span{},
					fmt.Sprintf("line %d is %d columns and offers no safe break point",
						num+1, runewidth.StringWidth(ln.text)))
			}
			out = append(out, ln)
			continue
		}
		for _, p := range pieces {
			out = append(out, srcLine{text: p})
		}
	}
	doc.lines = out
}

// breakAtCommas splits a long line after commas that sit inside brackets.
// Returns nil when no break inside a bracket exists.
func breakAtCommas(line, indent string, width int) []string {
	breaks := commaBreaks(line)
	if len(breaks) == 0 {
		return nil
	}
	hang := indent + "    "

	var pieces []string
	start := 0
	lineStart := indent
	for runewidth.StringWidth(lineStart+strings.TrimSpace(line[start:])) > width {
		if len(pieces) > 0 {
			lineStart = hang
		}
		// последняя запятая, укладывающаяся в ширину
		cut := -1
		budget := width - runewidth.StringWidth(lineStart)
		for _, b := range breaks {
			if b <= start {
				continue
			}
			fragment := strings.TrimSpace(line[start:b])
			if runewidth.StringWidth(fragment) <= budget {
				cut = b
			}
		}
		if cut < 0 {
			break
		}
		prefix := indent
		if len(pieces) > 0 {
			prefix = hang
		}
		pieces = append(pieces, strings.TrimRight(prefix+strings.TrimSpace(line[start:cut]), " "))
		start = cut
	}
	if len(pieces) == 0 {
		return nil
	}
	rest := strings.TrimSpace(line[start:])
	if rest != "" {
		pieces = append(pieces, hang+rest)
	}
	return pieces
}

// commaBreaks lists byte offsets just past each comma that sits inside an
// open bracket. Strings and comments are opaque.
func commaBreaks(line string) []int {
	var breaks []int
	offset := 0
	depth := 0
	for _, seg := range pytext.Split(line) {
		if seg.Kind == pytext.SegCode {
			for i := 0; i < len(seg.Text); i++ {
				switch seg.Text[i] {
				case '(', '[', '{':
					depth++
				case ')', ']', '}':
					if depth > 0 {
						depth--
					}
				case ',':
					if depth > 0 {
						breaks = append(breaks, offset+i+1)
					}
				}
			}
		}
		offset += len(seg.Text)
	}
	return breaks
}
