package pep8

import (
	"strings"

	"retab/internal/diag"
	"retab/internal/scan"
	"retab/internal/source"
)

// Options tunes the formatting passes.
type Options struct {
	// LineLength is the wrap threshold for code lines.
	LineLength int
	// CommentWidth is the re-flow width for comment text.
	CommentWidth int
	Reporter     diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.LineLength <= 0 {
		o.LineLength = 79
	}
	if o.CommentWidth <= 0 {
		o.CommentWidth = 72
	}
	return o
}

// srcLine is one physical line of the document under formatting. Lines that
// sit inside a triple-quoted string are opaque: no pass may touch them.
type srcLine struct {
	text     string
	inString bool
}

// document is the mutable line buffer the passes operate on.
type document struct {
	lines       []srcLine
	eol         string
	hadFinalEOL bool
}

// pass is one named formatting step. Order in the passes table is part of
// the contract: operator spacing runs before comment normalization, line
// wrapping always runs last.
type pass struct {
	name string
	fn   func(doc *document, opts Options)
}

var passes = []pass{
	{"trailing-whitespace", stripTrailing},
	{"pet-peeves", petPeeves},
	{"operator-spacing", spaceOperators},
	{"comments", normalizeComments},
	{"blank-lines", enforceBlankLines},
	{"line-wrap", wrapLongLines},
}

// Format runs every pass over the file content and returns the result.
// The input is expected to be engine output: structurally resolved, with
// canonical indentation already in place.
func Format(file *source.File, opts Options) []byte {
	opts = opts.withDefaults()
	doc := load(file)
	for _, p := range passes {
		p.fn(doc, opts)
	}
	return doc.bytes()
}

// load splits the file into lines and marks the ones living inside
// triple-quoted strings, so the passes leave string interiors alone.
func load(file *source.File) *document {
	res := scan.Scan(file, scan.Options{})
	inString := make(map[int]bool)
	for i := range res.Lines {
		for _, p := range res.Lines[i].Phys {
			if p.InString {
				inString[p.Num] = true
			}
		}
	}

	content := string(file.Content)
	hadFinalEOL := strings.HasSuffix(content, "\n")
	raw := strings.Split(content, "\n")
	if hadFinalEOL {
		raw = raw[:len(raw)-1]
	}

	doc := &document{
		lines:       make([]srcLine, len(raw)),
		eol:         file.LineEnding(),
		hadFinalEOL: hadFinalEOL,
	}
	for i, text := range raw {
		doc.lines[i] = srcLine{text: text, inString: inString[i+1]}
	}
	return doc
}

func (d *document) bytes() []byte {
	if len(d.lines) == 0 {
		return nil
	}
	parts := make([]string, len(d.lines))
	for i := range d.lines {
		parts[i] = d.lines[i].text
	}
	text := strings.Join(parts, d.eol)
	if d.hadFinalEOL {
		text += d.eol
	}
	return []byte(text)
}

// indentOf returns the leading whitespace of a line.
func indentOf(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

func stripTrailing(doc *document, _ Options) {
	for i := range doc.lines {
		if doc.lines[i].inString {
			continue
		}
		doc.lines[i].text = strings.TrimRight(doc.lines[i].text, " \t")
	}
}
