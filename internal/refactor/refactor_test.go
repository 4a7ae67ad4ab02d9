package refactor_test

import (
	"testing"

	"retab/internal/refactor"
	"retab/internal/source"
)

func mkfile(t *testing.T, input string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.py", []byte(input)))
}

func TestRemoveUnusedImport(t *testing.T) {
	res := refactor.RemoveUnusedImports(mkfile(t, "import os\nimport sys\n\nprint(sys.path)\n"), nil)
	want := "import sys\n\nprint(sys.path)\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
	if res.Changed != 1 {
		t.Errorf("Changed = %d, want 1", res.Changed)
	}
}

func TestRemoveUnusedFromName(t *testing.T) {
	res := refactor.RemoveUnusedImports(mkfile(t, "from os import path, sep\nprint(path)\n"), nil)
	want := "from os import path\nprint(path)\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestAliasImportCountsAsUsed(t *testing.T) {
	input := "import numpy as np\nprint(np.zeros(3))\n"
	res := refactor.RemoveUnusedImports(mkfile(t, input), nil)
	if string(res.Output) != input || res.Changed != 0 {
		t.Errorf("alias import dropped: %q (changed %d)", res.Output, res.Changed)
	}
}

func TestFutureAndStarImportsSurvive(t *testing.T) {
	input := "from __future__ import annotations\nfrom os import *\n"
	res := refactor.RemoveUnusedImports(mkfile(t, input), nil)
	if string(res.Output) != input {
		t.Errorf("got %q, want untouched input", res.Output)
	}
}

func TestNameInStringIsNotUsage(t *testing.T) {
	// упоминание в литерале — не использование
	res := refactor.RemoveUnusedImports(mkfile(t, "import os\nx = \"os\"\n"), nil)
	want := "x = \"os\"\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestSimplifyBoolReturn(t *testing.T) {
	input := "def f(x):\n    if x > 0:\n        return True\n    else:\n        return False\n"
	res := refactor.SimplifyBoolReturns(mkfile(t, input), nil)
	want := "def f(x):\n    return bool(x > 0)\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
	if res.Changed != 1 {
		t.Errorf("Changed = %d, want 1", res.Changed)
	}
}

func TestSimplifyBoolReturnNegated(t *testing.T) {
	input := "if ok:\n    return False\nelse:\n    return True\n"
	res := refactor.SimplifyBoolReturns(mkfile(t, input), nil)
	want := "return not bool(ok)\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestBoolReturnMultiStatementBodyKept(t *testing.T) {
	input := "if x:\n    y = 1\n    return True\nelse:\n    return False\n"
	res := refactor.SimplifyBoolReturns(mkfile(t, input), nil)
	if string(res.Output) != input || res.Changed != 0 {
		t.Errorf("multi-statement suite rewritten: %q", res.Output)
	}
}

func TestBoolReturnTrailingSuiteKept(t *testing.T) {
	// после else-ветки ещё одна строка её блока — не трогаем
	input := "if x:\n    return True\nelse:\n    return False\n    print(1)\n"
	res := refactor.SimplifyBoolReturns(mkfile(t, input), nil)
	if string(res.Output) != input {
		t.Errorf("got %q, want untouched input", res.Output)
	}
}

func TestFStringFromFormatCall(t *testing.T) {
	cases := []struct{ in, want string }{
		{"x = \"{}!\".format(name)\n", "x = f\"{name}!\"\n"},
		{"msg = \"{0} and {1}\".format(a, b)\n", "msg = f\"{a} and {b}\"\n"},
		{"s = \"{x}\".format(x=val)\n", "s = f\"{val}\"\n"},
		{"s = \"{v:>8}\".format(v=n)\n", "s = f\"{n:>8}\"\n"},
	}
	for _, c := range cases {
		res := refactor.ConvertFStrings(mkfile(t, c.in), nil)
		if string(res.Output) != c.want {
			t.Errorf("ConvertFStrings(%q) = %q, want %q", c.in, res.Output, c.want)
		}
	}
}

func TestFStringFromPercent(t *testing.T) {
	cases := []struct{ in, want string }{
		{"s = \"%s=%d\" % (k, v)\n", "s = f\"{k}={v}\"\n"},
		{"print(\"hi %s\" % name)\n", "print(f\"hi {name}\")\n"},
		{"s = \"%r\" % x\n", "s = f\"{x!r}\"\n"},
		// литеральные скобки в шаблоне экранируются
		{"s = \"d = {%s}\" % x\n", "s = f\"d = {{{x}}}\"\n"},
	}
	for _, c := range cases {
		res := refactor.ConvertFStrings(mkfile(t, c.in), nil)
		if string(res.Output) != c.want {
			t.Errorf("ConvertFStrings(%q) = %q, want %q", c.in, res.Output, c.want)
		}
	}
}

func TestFStringSkipsUnsafe(t *testing.T) {
	cases := []string{
		"x = \"{}\".format(x + 1)\n",       // выражение, не идентификатор
		"x = \"{}\".format(f())\n",         // вызов
		"x = f\"{x}\".format(y)\n",         // уже f-строка
		"x = r\"%s\" % v\n",                // raw-литерал
		"x = \"%s %s\" % (a,)\n",           // число аргументов не совпало
		"x = \"%q\" % v\n",                 // незнакомый спецификатор
		"doc = \"\"\"{} stays\"\"\"\n",     // нет вызова .format
	}
	for _, in := range cases {
		res := refactor.ConvertFStrings(mkfile(t, in), nil)
		if string(res.Output) != in || res.Changed != 0 {
			t.Errorf("ConvertFStrings(%q) = %q, want untouched", in, res.Output)
		}
	}
}
