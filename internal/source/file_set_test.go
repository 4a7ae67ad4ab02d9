package source_test

import (
	"bytes"
	"testing"

	"retab/internal/source"
)

func TestAddVirtualNormalizesContent(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("\xef\xbb\xbfx = 1\r\ny = 2\r\n"))
	f := fs.Get(id)

	if !bytes.Equal(f.Content, []byte("x = 1\ny = 2\n")) {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&source.FileHadCRLF == 0 {
		t.Error("CRLF flag not set")
	}
	if f.LineEnding() != "\r\n" {
		t.Errorf("line ending = %q, want CRLF", f.LineEnding())
	}
}

func TestLineEndingDefaultsToLF(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.py", []byte("x = 1\n")))
	if f.LineEnding() != "\n" {
		t.Errorf("line ending = %q, want LF", f.LineEnding())
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("ab\ncd\nef\n"))
	f := fs.Get(id)

	span := source.Span{File: f.ID, Start: 3, End: 5} // "cd"
	start, end := fs.Resolve(span)
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Errorf("end = %+v, want 2:3", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.py", []byte("first\nsecond\nthird")))

	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(99); got != "" {
		t.Errorf("GetLine(99) = %q, want empty", got)
	}
}

func TestGetByPath(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.py", []byte("x = 1\n"))
	if _, ok := fs.GetByPath("a.py"); !ok {
		t.Error("virtual file not found by path")
	}
	if _, ok := fs.GetByPath("missing.py"); ok {
		t.Error("missing file reported as found")
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 1, Start: 5, End: 10}
	b := source.Span{File: 1, Start: 8, End: 20}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Errorf("cover = %+v", c)
	}
}
