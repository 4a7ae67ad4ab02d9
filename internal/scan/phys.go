package scan

import (
	"strings"

	"retab/internal/source"
)

// PhysLine describes one physical line of the file.
type PhysLine struct {
	Num     int         // 1-based physical line number
	Span    source.Span // whole line without the newline
	Indent  string      // leading whitespace, verbatim
	Content string      // text after Indent, right-trimmed
	// InString marks a line that begins inside a triple-quoted string.
	// Such lines are emitted verbatim: their leading whitespace is string
	// content, not indentation.
	InString bool
}

// Blank reports whether the line has no content at all.
func (p PhysLine) Blank() bool {
	return p.Content == ""
}

// CommentOnly reports whether the line holds nothing but a comment.
func (p PhysLine) CommentOnly() bool {
	return strings.HasPrefix(p.Content, "#")
}

// splitPhysLines walks the file with a cursor and produces one PhysLine per
// physical line. Never fails.
func splitPhysLines(file *source.File) []PhysLine {
	cur := NewCursor(file)
	lines := make([]PhysLine, 0, len(file.LineIdx)+1)
	num := 1

	for !cur.EOF() {
		mark := cur.Mark()
		for !cur.EOF() && cur.Peek() != '\n' {
			cur.Bump()
		}
		span := cur.SpanFrom(mark)
		raw := string(file.Content[span.Start:span.End])
		if !cur.EOF() {
			cur.Bump() // съедаем \n
		}

		indentLen := 0
		for indentLen < len(raw) && (raw[indentLen] == ' ' || raw[indentLen] == '\t') {
			indentLen++
		}
		lines = append(lines, PhysLine{
			Num:     num,
			Span:    span,
			Indent:  raw[:indentLen],
			Content: strings.TrimRight(raw[indentLen:], " \t"),
		})
		num++
	}
	return lines
}
