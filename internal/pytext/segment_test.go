package pytext_test

import (
	"testing"

	"retab/internal/pytext"
)

func kinds(segs []pytext.Segment) []pytext.SegKind {
	out := make([]pytext.SegKind, len(segs))
	for i, s := range segs {
		out[i] = s.Kind
	}
	return out
}

func TestSplitPlainCode(t *testing.T) {
	segs := pytext.Split("x = a + b")
	if len(segs) != 1 || segs[0].Kind != pytext.SegCode {
		t.Fatalf("segs = %+v", segs)
	}
}

func TestSplitStringAndComment(t *testing.T) {
	line := `x = "hi # not comment" + y  # real comment`
	segs := pytext.Split(line)
	want := []pytext.SegKind{pytext.SegCode, pytext.SegString, pytext.SegCode, pytext.SegComment}
	got := kinds(segs)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if segs[1].Text != `"hi # not comment"` {
		t.Errorf("string segment = %q", segs[1].Text)
	}
	if segs[3].Text != "# real comment" {
		t.Errorf("comment segment = %q", segs[3].Text)
	}
	if pytext.Join(segs) != line {
		t.Errorf("join round-trip broke: %q", pytext.Join(segs))
	}
}

func TestSplitEscapedQuote(t *testing.T) {
	segs := pytext.Split(`x = "say \"hi\"" + 1`)
	if segs[1].Text != `"say \"hi\""` {
		t.Errorf("string segment = %q", segs[1].Text)
	}
}

func TestSplitPrefixedString(t *testing.T) {
	segs := pytext.Split(`x = rb'raw' + f"val"`)
	if segs[1].Text != `rb'raw'` {
		t.Errorf("prefixed segment = %q", segs[1].Text)
	}
	if segs[3].Text != `f"val"` {
		t.Errorf("f-string segment = %q", segs[3].Text)
	}
}

func TestSplitTripleOnOneLine(t *testing.T) {
	segs := pytext.Split(`s = """abc 'x' def""" + t`)
	if segs[1].Text != `"""abc 'x' def"""` {
		t.Errorf("triple segment = %q", segs[1].Text)
	}
}

func TestMapCodeTouchesOnlyCode(t *testing.T) {
	line := `x  =  "a  b"  # c  d`
	got := pytext.MapCode(line, func(code string) string {
		out := make([]byte, 0, len(code))
		prevSpace := false
		for i := 0; i < len(code); i++ {
			if code[i] == ' ' {
				if prevSpace {
					continue
				}
				prevSpace = true
			} else {
				prevSpace = false
			}
			out = append(out, code[i])
		}
		return string(out)
	})
	if got != `x = "a  b" # c  d` {
		t.Errorf("got %q", got)
	}
}

func TestStripLiteralsKeepsOffsets(t *testing.T) {
	line := `import os  # note "x"`
	got := pytext.StripLiterals(line)
	if len(got) != len(line) {
		t.Fatalf("length changed: %d != %d", len(got), len(line))
	}
	if got[:9] != "import os" {
		t.Errorf("code prefix = %q", got[:9])
	}
	for i := 11; i < len(got); i++ {
		if got[i] != ' ' {
			t.Errorf("comment byte %d not blanked: %q", i, got)
			break
		}
	}
}
