package indent_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"retab/internal/diag"
	"retab/internal/indent"
	"retab/internal/source"
)

// runEngine прогоняет движок над виртуальным файлом с конфигом по умолчанию.
func runEngine(t *testing.T, input string) *indent.Result {
	t.Helper()
	return runEngineCfg(t, input, indent.DefaultConfig())
}

func runEngineCfg(t *testing.T, input string, cfg indent.Config) *indent.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(id)

	bag := diag.NewBag(64)
	res, err := indent.Run(file, cfg, indent.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

func hasEvent(res *indent.Result, kind indent.RepairKind) bool {
	for _, ev := range res.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestCanonicalFileIsByteIdentical(t *testing.T) {
	input := "" +
		"def f(x):\n" +
		"    if x:\n" +
		"        return 1\n" +
		"    return 0\n" +
		"\n" +
		"y = f(2)\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusClean {
		t.Fatalf("status = %v, want clean (events: %v)", res.Status, res.Events)
	}
	if string(res.Output) != input {
		t.Errorf("canonical input changed:\ngot:\n%s\nwant:\n%s", res.Output, input)
	}
}

func TestTwoSpaceFileReindentsClean(t *testing.T) {
	input := "" +
		"def f(x):\n" +
		"  if x:\n" +
		"    return 1\n" +
		"  return 0\n"
	want := "" +
		"def f(x):\n" +
		"    if x:\n" +
		"        return 1\n" +
		"    return 0\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusClean {
		t.Fatalf("status = %v, want clean (events: %v)", res.Status, res.Events)
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}
	if res.DetectedWidth != 2 {
		t.Errorf("detected width = %d, want 2", res.DetectedWidth)
	}
}

func TestMisalignedElseRealigned(t *testing.T) {
	input := "" +
		"if x:\n" +
		"    a = 1\n" +
		"  else:\n" +
		"    b = 2\n"
	want := "" +
		"if x:\n" +
		"    a = 1\n" +
		"else:\n" +
		"    b = 2\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRepaired {
		t.Fatalf("status = %v, want repaired", res.Status)
	}
	if !hasEvent(res, indent.RepairContinuerAlign) {
		t.Errorf("no continuer realign event: %v", res.Events)
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}
}

func TestOrphanContinuerGetsProvisionalFrame(t *testing.T) {
	input := "" +
		"x = 1\n" +
		"else:\n" +
		"    y = 2\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRepaired {
		t.Fatalf("status = %v, want repaired", res.Status)
	}
	if !hasEvent(res, indent.RepairOrphanContinuer) {
		t.Fatalf("no orphan continuer event: %v", res.Events)
	}
	for _, ev := range res.Events {
		if ev.Kind == indent.RepairOrphanContinuer && ev.Confidence != indent.ConfidenceLow {
			t.Errorf("orphan continuer confidence = %v, want low", ev.Confidence)
		}
	}
	// Сирота остаётся на своей кажущейся глубине, тело — на уровень глубже.
	if res.Lines[1].Depth != 0 || res.Lines[2].Depth != 1 {
		t.Errorf("depths = %d,%d, want 0,1", res.Lines[1].Depth, res.Lines[2].Depth)
	}
}

func TestUnanchoredJumpClampedToOneUnit(t *testing.T) {
	input := "" +
		"x = 1\n" +
		"            y = 2\n"
	want := "" +
		"x = 1\n" +
		"    y = 2\n"

	res := runEngine(t, input)
	if !hasEvent(res, indent.RepairIndentClamp) {
		t.Fatalf("no indent clamp event: %v", res.Events)
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}
}

func TestDedentPastRootClampedToZero(t *testing.T) {
	input := "" +
		"if a:\n" +
		"    x = 1\n" +
		"            y = 2\n" +
		"z = 3\n"

	res := runEngine(t, input)
	if !hasEvent(res, indent.RepairDedentClamp) {
		t.Fatalf("no dedent clamp event: %v", res.Events)
	}
	last := res.Lines[len(res.Lines)-1]
	if last.Depth != 0 {
		t.Errorf("final statement depth = %d, want 0", last.Depth)
	}
}

func TestConsistentWideIndentStaysClean(t *testing.T) {
	// Ровные 8 пробелов на уровень — стиль, а не повреждение.
	input := "" +
		"if a:\n" +
		"        x = 1\n" +
		"b = 2\n"
	want := "" +
		"if a:\n" +
		"    x = 1\n" +
		"b = 2\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusClean {
		t.Fatalf("status = %v, want clean (events: %v)", res.Status, res.Events)
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}
}

func TestTabIndentNormalized(t *testing.T) {
	input := "" +
		"if x:\n" +
		"\ty = 1\n" +
		"\tif z:\n" +
		"\t\tw = 2\n"
	want := "" +
		"if x:\n" +
		"    y = 1\n" +
		"    if z:\n" +
		"        w = 2\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRepaired {
		t.Fatalf("status = %v, want repaired", res.Status)
	}
	if !res.DetectedTabs {
		t.Error("tab-led file not detected as tab-indented")
	}
	if !hasEvent(res, indent.RepairTabNormalize) {
		t.Errorf("no tab normalize event: %v", res.Events)
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}
}

func TestTripleQuotedStringKeptVerbatim(t *testing.T) {
	input := "" +
		"def f():\n" +
		"  \"\"\"Docstring.\n" +
		"\n" +
		"      weird   internal    layout\n" +
		"\tand a tab\n" +
		"  \"\"\"\n" +
		"  return 1\n"

	res := runEngine(t, input)
	got := string(res.Output)
	for _, verbatim := range []string{"      weird   internal    layout", "\tand a tab"} {
		if !strings.Contains(got, verbatim+"\n") {
			t.Errorf("string interior line %q not preserved:\n%s", verbatim, got)
		}
	}
	if !strings.HasPrefix(got, "def f():\n    \"\"\"Docstring.") {
		t.Errorf("docstring head not reindented:\n%s", got)
	}
}

func TestBracketContinuationKeepsRelativeOffset(t *testing.T) {
	input := "" +
		"def f():\n" +
		"  x = call(a,\n" +
		"           b,\n" +
		"           c)\n" +
		"  return x\n"

	res := runEngine(t, input)
	lines := strings.Split(string(res.Output), "\n")
	// Голова ушла с 2 на 4 колонки; аргументы сдвинулись вместе с ней.
	if lines[1] != "    x = call(a," {
		t.Errorf("head = %q", lines[1])
	}
	wantArg := "    " + strings.Repeat(" ", 9) + "b,"
	if lines[2] != wantArg {
		t.Errorf("continuation = %q, want %q", lines[2], wantArg)
	}
}

func TestContinuationNeverCollapsesToHeadDepth(t *testing.T) {
	input := "" +
		"x = call(a,\n" +
		"b,\n" +
		"c)\n"

	res := runEngine(t, input)
	lines := strings.Split(string(res.Output), "\n")
	if lines[1] != "    b," || lines[2] != "    c)" {
		t.Errorf("continuations = %q, %q, want one unit in", lines[1], lines[2])
	}
}

func TestUnterminatedStringRejected(t *testing.T) {
	input := "x = 1\ns = \"\"\"open\nnever closed\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRejected {
		t.Fatalf("status = %v, want rejected", res.Status)
	}
	if res.Output != nil {
		t.Error("rejected file produced output")
	}
	if res.RejectLine != 2 {
		t.Errorf("reject line = %d, want 2", res.RejectLine)
	}
}

func TestUnterminatedBracketRejected(t *testing.T) {
	input := "x = f(1,\n      2,\ny = 3\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRejected {
		t.Fatalf("status = %v, want rejected", res.Status)
	}
	if res.RejectLine != 1 {
		t.Errorf("reject line = %d, want 1", res.RejectLine)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte("x = 1\n")))

	_, err := indent.Run(file, indent.Config{Unit: "ab"}, indent.Options{})
	if !errors.Is(err, indent.ErrBadConfig) {
		t.Fatalf("err = %v, want ErrBadConfig", err)
	}
	_, err = indent.Run(file, indent.Config{}, indent.Options{})
	if !errors.Is(err, indent.ErrBadConfig) {
		t.Fatalf("err = %v, want ErrBadConfig", err)
	}
}

func TestCRLFEndingRestored(t *testing.T) {
	input := "if x:\r\n  y = 1\r\n"
	want := "if x:\r\n    y = 1\r\n"

	res := runEngine(t, input)
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCommentSitsAtCurrentDepth(t *testing.T) {
	input := "" +
		"if x:\n" +
		"    a = 1\n" +
		"# stray comment\n" +
		"    b = 2\n"

	res := runEngine(t, input)
	lines := strings.Split(string(res.Output), "\n")
	if lines[2] != "    # stray comment" {
		t.Errorf("comment line = %q, want body depth", lines[2])
	}
}

// Повторный прогон над собственным выводом не должен менять ни байта.
func TestIdempotence(t *testing.T) {
	inputs := []string{
		"if x:\n    a = 1\n  else:\n    b = 2\n",
		"x = 1\n            y = 2\nz = 3\n",
		"x = 1\nelse:\n    y = 2\n",
		"if x:\n\ty = 1\n\telse:\n\t\tz = 2\n",
		"if a:\n    x = 1\n            y = 2\nz = 3\n",
		"def f():\n  x = call(a,\n           b)\n  return x\n",
	}
	for _, input := range inputs {
		first := runEngine(t, input)
		if first.Status == indent.StatusRejected {
			t.Fatalf("input rejected: %q", input)
		}
		second := runEngine(t, string(first.Output))
		if !bytes.Equal(first.Output, second.Output) {
			t.Errorf("not idempotent for %q:\nfirst:\n%s\nsecond:\n%s",
				input, first.Output, second.Output)
		}
	}
}

// Движок меняет только отступы: содержимое каждой строки без ведущих и
// хвостовых пробелов обязано совпасть.
func TestTokenPreservation(t *testing.T) {
	inputs := []string{
		"if x:\n    a = 1\n  else:\n    b = 2\n",
		"x = 1\n            y = 2\nz = 3\n",
		"if x:\n\ty = 1\n",
		"try:\n  a()\nexcept ValueError:\n  b()\nfinally:\n  c()\n",
	}
	for _, input := range inputs {
		res := runEngine(t, input)
		got := strings.Split(strings.TrimRight(string(res.Output), "\n"), "\n")
		want := strings.Split(strings.TrimRight(input, "\n"), "\n")
		if len(got) != len(want) {
			t.Fatalf("line count changed for %q: %d -> %d", input, len(want), len(got))
		}
		for i := range want {
			g := strings.Trim(got[i], " \t")
			w := strings.Trim(want[i], " \t")
			if g != w {
				t.Errorf("line %d content changed: %q -> %q", i+1, w, g)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	input := "if x:\n   a = 1\n     b = 2\n else:\n  c = 3\n"
	first := runEngine(t, input)
	second := runEngine(t, input)
	if !bytes.Equal(first.Output, second.Output) {
		t.Error("output differs between runs")
	}
	if len(first.Events) != len(second.Events) {
		t.Fatalf("event count differs: %d vs %d", len(first.Events), len(second.Events))
	}
	for i := range first.Events {
		if first.Events[i] != second.Events[i] {
			t.Errorf("event %d differs: %v vs %v", i, first.Events[i], second.Events[i])
		}
	}
}

// Глубина между соседними операторами растёт максимум на один уровень,
// каким бы повреждённым ни был вход.
func TestDepthMonotonicity(t *testing.T) {
	inputs := []string{
		"x = 1\n                    y = 2\n",
		"if a:\n        if b:\n                        c = 1\n",
		"x = 1\n   y = 2\n      z = 3\nw = 4\n",
		"else:\n        x = 1\n",
	}
	for _, input := range inputs {
		res := runEngine(t, input)
		prev := 0
		for _, ll := range res.Lines {
			if ll.Depth < 0 {
				t.Fatalf("unresolved depth in %q", input)
			}
			if ll.Depth > prev+1 {
				t.Errorf("depth jumped %d -> %d in %q", prev, ll.Depth, input)
			}
			prev = ll.Depth
		}
	}
}

func TestStrayReturnPushedIntoOpenBlock(t *testing.T) {
	input := "" +
		"def f():\n" +
		"    x = 1\n" +
		"return x\n"
	want := "" +
		"def f():\n" +
		"    x = 1\n" +
		"    return x\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRepaired {
		t.Fatalf("status = %v, want repaired (events: %v)", res.Status, res.Events)
	}
	if !hasEvent(res, indent.RepairStrayStatement) {
		t.Fatalf("no stray statement event: %v", res.Events)
	}
	for _, ev := range res.Events {
		if ev.Kind == indent.RepairStrayStatement && ev.Confidence != indent.ConfidenceLow {
			t.Errorf("stray statement confidence = %v, want low", ev.Confidence)
		}
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}
}

func TestStrayReturnAfterClosedBlockStaysPut(t *testing.T) {
	// Оператор верхнего уровня уже закрыл блок — return никуда не двигаем.
	input := "" +
		"def f():\n" +
		"    x = 1\n" +
		"y = 2\n" +
		"return y\n"

	res := runEngine(t, input)
	if hasEvent(res, indent.RepairStrayStatement) {
		t.Fatalf("unexpected stray statement event: %v", res.Events)
	}
	last := res.Lines[len(res.Lines)-1]
	if last.Depth != 0 {
		t.Errorf("final statement depth = %d, want 0", last.Depth)
	}
}

func TestDedentedDefRealignedUnderClass(t *testing.T) {
	input := "" +
		"class A:\n" +
		"    x = 1\n" +
		"def g(self):\n" +
		"    return self.x\n"
	want := "" +
		"class A:\n" +
		"    x = 1\n" +
		"    def g(self):\n" +
		"        return self.x\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusRepaired {
		t.Fatalf("status = %v, want repaired (events: %v)", res.Status, res.Events)
	}
	if !hasEvent(res, indent.RepairMethodAlign) {
		t.Fatalf("no method realign event: %v", res.Events)
	}
	if string(res.Output) != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}

	// Повторный прогон над починенным текстом уже чистый.
	second := runEngine(t, string(res.Output))
	if second.Status != indent.StatusClean {
		t.Errorf("second run status = %v, want clean (events: %v)", second.Status, second.Events)
	}
}

func TestTopLevelDefBesideDeeperClassUntouched(t *testing.T) {
	// class глубже, чем def: соседний верхнеуровневый блок, а не метод.
	input := "" +
		"if x:\n" +
		"    class A:\n" +
		"        pass\n" +
		"def g():\n" +
		"    pass\n"

	res := runEngine(t, input)
	if hasEvent(res, indent.RepairMethodAlign) {
		t.Fatalf("unexpected method realign event: %v", res.Events)
	}
	for _, ll := range res.Lines {
		if strings.HasPrefix(ll.Content(), "def g") && ll.Depth != 0 {
			t.Errorf("def depth = %d, want 0", ll.Depth)
		}
	}
}

func TestTryExceptFinallyChain(t *testing.T) {
	input := "" +
		"try:\n" +
		"    a()\n" +
		"except ValueError:\n" +
		"    b()\n" +
		"except KeyError:\n" +
		"    c()\n" +
		"else:\n" +
		"    d()\n" +
		"finally:\n" +
		"    e()\n"

	res := runEngine(t, input)
	if res.Status != indent.StatusClean {
		t.Fatalf("status = %v, want clean (events: %v)", res.Status, res.Events)
	}
	if string(res.Output) != input {
		t.Errorf("chain changed:\n%s", res.Output)
	}
}

func TestBlankLinesEmitEmpty(t *testing.T) {
	input := "if x:\n    a = 1\n   \n    b = 2\n"
	want := "if x:\n    a = 1\n\n    b = 2\n"

	res := runEngine(t, input)
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestEmptyFile(t *testing.T) {
	res := runEngine(t, "")
	if res.Status != indent.StatusClean {
		t.Fatalf("status = %v, want clean", res.Status)
	}
	if len(res.Output) != 0 {
		t.Errorf("output = %q, want empty", res.Output)
	}
}
