package diffview_test

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"retab/internal/diffview"
)

func init() {
	// без ANSI-кодов сравнивать проще
	color.NoColor = true
}

func TestUnifiedIdentical(t *testing.T) {
	if got := diffview.Unified("a.py", []byte("x = 1\n"), []byte("x = 1\n")); got != "" {
		t.Errorf("identical inputs produced %q", got)
	}
}

func TestUnifiedLineChange(t *testing.T) {
	before := "a = 1\nb = 2\nc = 3\n"
	after := "a = 1\nb = 20\nc = 3\n"
	out := diffview.Unified("a.py", []byte(before), []byte(after))
	for _, want := range []string{"--- a.py", "- b = 2", "+ b = 20", "  a = 1", "  c = 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff missing %q:\n%s", want, out)
		}
	}
}

func TestUnifiedCollapsesFarContext(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("pass\n")
	}
	before := sb.String() + "x = 1\n"
	after := sb.String() + "x = 2\n"
	out := diffview.Unified("a.py", []byte(before), []byte(after))
	if got := strings.Count(out, "pass"); got > 4 {
		t.Errorf("expected collapsed context, saw %d context lines:\n%s", got, out)
	}
	if !strings.Contains(out, "@@") {
		t.Errorf("expected hunk separator:\n%s", out)
	}
}

func TestUnifiedInsertion(t *testing.T) {
	out := diffview.Unified("a.py", []byte("a = 1\n"), []byte("a = 1\nb = 2\n"))
	if !strings.Contains(out, "+ b = 2") {
		t.Errorf("missing insertion:\n%s", out)
	}
	if strings.Contains(out, "\n- ") {
		t.Errorf("unexpected deletion:\n%s", out)
	}
}

func TestStat(t *testing.T) {
	got := diffview.Stat([]byte("a\nb\n"), []byte("a\nc\nd\n"))
	if got != "+2 -1" {
		t.Errorf("Stat = %q, want +2 -1", got)
	}
}
