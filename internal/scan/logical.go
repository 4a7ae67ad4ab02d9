package scan

import (
	"fmt"

	"retab/internal/diag"
	"retab/internal/lineclass"
	"retab/internal/source"
)

// LogicalLine is one semantically complete statement or block header,
// possibly spanning several physical lines.
type LogicalLine struct {
	Index        int
	Phys         []PhysLine // contiguous, non-overlapping with neighbors
	Class        lineclass.Class
	Keyword      lineclass.Keyword
	BracketDelta int // net open brackets contributed (0 for closed statements)
	Depth        int // resolved nesting depth; -1 until inference
	Span         source.Span
}

// First returns the first physical line of the statement.
func (l *LogicalLine) First() PhysLine {
	return l.Phys[0]
}

// Indent returns the raw leading whitespace of the first physical line.
func (l *LogicalLine) Indent() string {
	return l.Phys[0].Indent
}

// Content returns the trimmed content of the first physical line.
func (l *LogicalLine) Content() string {
	return l.Phys[0].Content
}

// Unclosed identifies a construct that never closed before EOF.
type Unclosed struct {
	Line int  // 1-based physical line of the opener
	What byte // '(', '[', '{' or the quote character
}

// Result is the scanner output for one file.
type Result struct {
	Lines     []LogicalLine
	PhysCount int
	// UnclosedBracket/UnclosedString are set when the statement at EOF was
	// force-closed; the driver turns them into a Rejected status.
	UnclosedBracket *Unclosed
	UnclosedString  *Unclosed
}

// Scan tokenizes a file into logical lines. Never fails: all damage is
// reported through opts.Reporter and the Unclosed fields.
func Scan(file *source.File, opts Options) *Result {
	phys := splitPhysLines(file)
	res := &Result{
		Lines:     make([]LogicalLine, 0, len(phys)),
		PhysCount: len(phys),
	}

	st := &lineState{}
	var cur *LogicalLine

	flush := func() {
		cur.Class, cur.Keyword = classify(cur, st)
		cur.BracketDelta = st.delta
		cur.Index = len(res.Lines)
		cur.Span = cur.Phys[0].Span
		for _, p := range cur.Phys[1:] {
			cur.Span = cur.Span.Cover(p.Span)
		}
		if st.strayCloser && opts.Reporter != nil {
			diag.ReportWarning(opts.Reporter, diag.ScanUnbalancedCloser, cur.Span,
				fmt.Sprintf("closing bracket on line %d has no matching opener", st.strayLine))
		}
		res.Lines = append(res.Lines, *cur)
		cur = nil
	}

	for i := range phys {
		p := phys[i]
		if cur == nil {
			st.resetStmt()
			cur = &LogicalLine{Phys: []PhysLine{p}, Depth: -1}
		} else {
			p.InString = st.triple != 0
			cur.Phys = append(cur.Phys, p)
		}
		st.feed(p.Content, p.Num)
		if !st.open() {
			flush()
		}
	}

	// Принудительное закрытие на EOF.
	if cur != nil {
		switch {
		case st.triple != 0:
			res.UnclosedString = &Unclosed{Line: st.tripleLine, What: st.triple}
			diag.ReportError(opts.Reporter, diag.ScanUnterminatedString, cur.Span,
				fmt.Sprintf("triple-quoted string opened on line %d is never closed", st.tripleLine))
		case len(st.brackets) > 0:
			first := st.brackets[0]
			res.UnclosedBracket = &Unclosed{Line: first.line, What: first.ch}
			diag.ReportError(opts.Reporter, diag.ScanUnterminatedBracket, cur.Span,
				fmt.Sprintf("bracket %q opened on line %d is never closed", first.ch, first.line))
		case st.backslash:
			diag.ReportWarning(opts.Reporter, diag.ScanDanglingBackslash, cur.Span,
				"line continuation at end of file")
		}
		flush()
	}

	return res
}

// classify assigns the logical line its class and keyword. Openers require
// the block-open colon; continuers are recognized by keyword alone so that
// a damaged clause (missing colon) can still be re-anchored.
func classify(l *LogicalLine, st *lineState) (lineclass.Class, lineclass.Keyword) {
	first := l.Phys[0]
	if len(l.Phys) == 1 && first.Blank() {
		return lineclass.Blank, lineclass.KwNone
	}
	if first.CommentOnly() {
		return lineclass.Comment, lineclass.KwNone
	}

	kw := leadingKeyword(first.Content)
	if kw == lineclass.KwNone {
		return lineclass.Plain, lineclass.KwNone
	}
	if kw.IsContinuer() {
		return lineclass.Continuer, kw
	}
	if st.lastCode == ':' {
		return lineclass.Opener, kw
	}
	// заголовок без двоеточия (однострочный `if x: y` уже съел тело) — Plain
	return lineclass.Plain, lineclass.KwNone
}

// leadingKeyword extracts the block-relevant keyword a line starts with.
// `async def/for/with` counts as the underlying opener keyword.
func leadingKeyword(content string) lineclass.Keyword {
	word, rest := firstWord(content)
	kw, ok := lineclass.LookupKeyword(word)
	if !ok {
		return lineclass.KwNone
	}
	if kw == lineclass.KwAsync {
		inner, _ := firstWord(rest)
		switch inner {
		case "def":
			return lineclass.KwDef
		case "for":
			return lineclass.KwFor
		case "with":
			return lineclass.KwWith
		}
		return lineclass.KwNone
	}
	// `if x: y = 1` остаётся заголовком только при настоящем suite;
	// это решает classify по последнему символу кода.
	return kw
}

func firstWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && (isIdentByte(s[i])) {
		i++
	}
	word = s[:i]
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return word, s[i:]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
