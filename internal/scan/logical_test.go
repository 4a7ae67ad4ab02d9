package scan_test

import (
	"testing"

	"retab/internal/diag"
	"retab/internal/lineclass"
	"retab/internal/scan"
	"retab/internal/source"
	"retab/internal/testkit"
)

// scanString сканирует виртуальный файл и возвращает результат вместе с Bag.
// Каждый результат прогоняется через проверку инвариантов сканера.
func scanString(t *testing.T, input string) (*scan.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(input)))
	bag := diag.NewBag(64)
	res := scan.Scan(file, scan.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckScanInvariants(res, file); err != nil {
		t.Fatalf("scan invariants violated: %v", err)
	}
	return res, bag
}

func classes(res *scan.Result) []lineclass.Class {
	out := make([]lineclass.Class, len(res.Lines))
	for i := range res.Lines {
		out[i] = res.Lines[i].Class
	}
	return out
}

func TestSimpleStatements(t *testing.T) {
	res, _ := scanString(t, "x = 1\ny = 2\n")
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
	for i, ll := range res.Lines {
		if ll.Class != lineclass.Plain {
			t.Errorf("line %d class = %v, want plain", i, ll.Class)
		}
		if len(ll.Phys) != 1 {
			t.Errorf("line %d spans %d phys lines, want 1", i, len(ll.Phys))
		}
	}
}

func TestClassification(t *testing.T) {
	input := "" +
		"if x:\n" +
		"    pass\n" +
		"else:\n" +
		"\n" +
		"# comment\n" +
		"async def f():\n" +
		"    pass\n"
	res, _ := scanString(t, input)

	want := []struct {
		class lineclass.Class
		kw    lineclass.Keyword
	}{
		{lineclass.Opener, lineclass.KwIf},
		{lineclass.Plain, lineclass.KwNone},
		{lineclass.Continuer, lineclass.KwElse},
		{lineclass.Blank, lineclass.KwNone},
		{lineclass.Comment, lineclass.KwNone},
		{lineclass.Opener, lineclass.KwDef},
		{lineclass.Plain, lineclass.KwNone},
	}
	if len(res.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(res.Lines), len(want))
	}
	for i, w := range want {
		if res.Lines[i].Class != w.class || res.Lines[i].Keyword != w.kw {
			t.Errorf("line %d = %v/%v, want %v/%v",
				i, res.Lines[i].Class, res.Lines[i].Keyword, w.class, w.kw)
		}
	}
}

func TestOpenerRequiresColon(t *testing.T) {
	// `if` без двоеточия — повреждённый заголовок, не открывает блок.
	res, _ := scanString(t, "if x\n")
	if res.Lines[0].Class != lineclass.Plain {
		t.Errorf("class = %v, want plain", res.Lines[0].Class)
	}

	// Однострочник `if x: y = 1` тело уже съел — тоже не открывает.
	res, _ = scanString(t, "if x: y = 1\n")
	if res.Lines[0].Class != lineclass.Plain {
		t.Errorf("one-liner class = %v, want plain", res.Lines[0].Class)
	}
}

func TestBracketsMergePhysicalLines(t *testing.T) {
	input := "x = f(1,\n      2,\n      3)\ny = 4\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
	if len(res.Lines[0].Phys) != 3 {
		t.Errorf("first statement spans %d phys lines, want 3", len(res.Lines[0].Phys))
	}
}

func TestNestedAndMixedBrackets(t *testing.T) {
	input := "x = {\"a\": [1,\n(2, 3)],\n}\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 1 {
		t.Fatalf("got %d logical lines, want 1", len(res.Lines))
	}
}

func TestBackslashContinuation(t *testing.T) {
	input := "x = 1 + \\\n    2\ny = 3\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
	if len(res.Lines[0].Phys) != 2 {
		t.Errorf("continuation spans %d phys lines, want 2", len(res.Lines[0].Phys))
	}
}

func TestTripleQuotedString(t *testing.T) {
	input := "s = \"\"\"first\nif fake:\n    # not a comment\n\"\"\"\nx = 1\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
	ll := res.Lines[0]
	if len(ll.Phys) != 4 {
		t.Fatalf("string spans %d phys lines, want 4", len(ll.Phys))
	}
	for i, p := range ll.Phys[1:] {
		if !p.InString {
			t.Errorf("phys line %d not marked InString", i+2)
		}
	}
}

func TestBracketsInsideStringsIgnored(t *testing.T) {
	input := "x = \"(not open\"\ny = '[also not'\nz = 1\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 3 {
		t.Fatalf("got %d logical lines, want 3", len(res.Lines))
	}
}

func TestBracketsInCommentsIgnored(t *testing.T) {
	input := "x = 1  # not open (\ny = 2\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
}

func TestEscapedQuoteInsideString(t *testing.T) {
	input := "x = \"say \\\"hi\\\" (\"\ny = 2\n"
	res, _ := scanString(t, input)
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
}

func TestUnclosedBracketReported(t *testing.T) {
	res, bag := scanString(t, "x = f(1,\n      2\n")
	if res.UnclosedBracket == nil {
		t.Fatal("unclosed bracket not detected")
	}
	if res.UnclosedBracket.Line != 1 || res.UnclosedBracket.What != '(' {
		t.Errorf("unclosed = %+v, want line 1 '('", res.UnclosedBracket)
	}
	if !bag.HasErrors() {
		t.Error("no error diagnostic reported")
	}
}

func TestUnclosedTripleStringReported(t *testing.T) {
	res, bag := scanString(t, "x = 1\ns = \"\"\"never\nclosed\n")
	if res.UnclosedString == nil {
		t.Fatal("unclosed string not detected")
	}
	if res.UnclosedString.Line != 2 {
		t.Errorf("unclosed line = %d, want 2", res.UnclosedString.Line)
	}
	if !bag.HasErrors() {
		t.Error("no error diagnostic reported")
	}
}

func TestStrayCloserWarned(t *testing.T) {
	res, bag := scanString(t, "x = 1)\ny = 2\n")
	if len(res.Lines) != 2 {
		t.Fatalf("got %d logical lines, want 2", len(res.Lines))
	}
	if !bag.HasWarnings() {
		t.Error("stray closer produced no warning")
	}
}

func TestSpansCoverStatement(t *testing.T) {
	input := "x = f(1,\n      2)\n"
	res, _ := scanString(t, input)
	ll := res.Lines[0]
	if ll.Span.Start != ll.Phys[0].Span.Start {
		t.Errorf("span start = %d, want %d", ll.Span.Start, ll.Phys[0].Span.Start)
	}
	last := ll.Phys[len(ll.Phys)-1]
	if ll.Span.End != last.Span.End {
		t.Errorf("span end = %d, want %d", ll.Span.End, last.Span.End)
	}
}

func TestIndentAndContentSplit(t *testing.T) {
	res, _ := scanString(t, "  \tx = 1   \n")
	p := res.Lines[0].First()
	if p.Indent != "  \t" {
		t.Errorf("indent = %q", p.Indent)
	}
	if p.Content != "x = 1" {
		t.Errorf("content = %q, want right-trimmed", p.Content)
	}
}

func TestBlankAndCommentPhys(t *testing.T) {
	res, _ := scanString(t, "\n   \n  # note\n")
	got := classes(res)
	want := []lineclass.Class{lineclass.Blank, lineclass.Blank, lineclass.Comment}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, got[i], want[i])
		}
	}
}
