package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"retab/internal/diag"
	"retab/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	noteColor = color.New(color.Faint)
)

// Pretty форматирует диагностики в человекочитаемый вид. Идёт по
// bag.Items() (ожидается bag.Sort() заранее). Для каждой диагностики:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>, затем контекст строки с
// подчёркиванием ^~~~ по Span, затем Notes тем же форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	saved := color.NoColor
	if !opts.Color {
		color.NoColor = true
	}
	defer func() { color.NoColor = saved }()

	for _, d := range bag.Items() {
		var start source.LineCol
		if int(d.Primary.File) < fs.Len() {
			start, _ = fs.Resolve(d.Primary)
		}
		path := formatPath(fs, d.Primary.File, opts.PathMode)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col,
			severityText(d.Severity), d.Code.ID(), d.Message)

		if opts.ShowSource {
			writeSourceLine(w, fs, d.Primary)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				nstart, _ := fs.Resolve(n.Span)
				npath := formatPath(fs, n.Span.File, opts.PathMode)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
					noteColor.Sprint("note:"), npath, nstart.Line, nstart.Col, n.Msg)
			}
		}
	}
}

func severityText(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return errColor.Sprint("error")
	case diag.SevWarning:
		return warnColor.Sprint("warning")
	default:
		return infoColor.Sprint("info")
	}
}

// writeSourceLine prints the first line the span touches with a caret run
// underneath. Zero spans are skipped.
func writeSourceLine(w io.Writer, fs *source.FileSet, span source.Span) {
	if span.End <= span.Start {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	underStart := int(start.Col) - 1
	underLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underLen = int(end.Col - start.Col)
	}
	if underStart < 0 || underStart > len(line) {
		return
	}
	marker := "^"
	if underLen > 1 {
		marker += strings.Repeat("~", underLen-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", underStart), marker)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
