package testkit_test

import (
	"testing"

	"retab/internal/scan"
	"retab/internal/source"
	"retab/internal/testkit"
)

func TestScanInvariantsHold(t *testing.T) {
	inputs := []string{
		"",
		"x = 1\n",
		"def f(a,\n      b):\n    return a\n",
		"s = \"\"\"doc\nstring\"\"\"\nif x:\n    pass\n",
		"total = 1 + \\\n    2\n",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.py", []byte(input)))
		res := scan.Scan(file, scan.Options{})
		if err := testkit.CheckScanInvariants(res, file); err != nil {
			t.Errorf("invariants violated for %q: %v", input, err)
		}
	}
}

func TestScanInvariantsCatchDamage(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte("x = 1\ny = 2\n")))
	res := scan.Scan(file, scan.Options{})
	if len(res.Lines) < 2 {
		t.Fatal("expected two logical lines")
	}
	// искусственно ломаем порядок спанов
	res.Lines[1].Span.Start = 0
	if err := testkit.CheckScanInvariants(res, file); err == nil {
		t.Error("overlapping spans not detected")
	}
}
