package indent

import (
	"retab/internal/lineclass"
	"retab/internal/scan"
)

// damage is the healer's view of the line under inference: the logical line
// plus its measured widths. Whether a rule applies is decided against the
// inferencer state at the moment the line is reached.
type damage struct {
	line     *scan.LogicalLine
	width    int // apparent column width of the leading whitespace
	apparent int // width divided by the detected per-level width
}

// healRule is one structural correction. Match decides whether the rule owns
// the line; Apply mutates the stack and returns the corrected depth with the
// rule's confidence. Exactly one event is recorded per application.
type healRule struct {
	Kind  RepairKind
	Match func(in *inferencer, d *damage) bool
	Apply func(in *inferencer, d *damage) (int, Confidence)
}

// flowKeywords are statements that belong inside a suite; one of them at
// column zero with its block still open fell out of the body.
var flowKeywords = map[string]bool{
	"return":   true,
	"break":    true,
	"continue": true,
	"raise":    true,
	"pass":     true,
}

// leadingWord returns the identifier the content starts with, or "".
func leadingWord(content string) string {
	i := 0
	for i < len(content) {
		c := content[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' ||
			(i > 0 && c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return content[:i]
}

// healRules is the ordered correction table: first match wins, and order is
// part of the engine contract. Orphaned continuers are re-anchored before
// any width clamping runs, so a stray `else` is never mistaken for a plain
// over-indented statement; the stray-statement and method rules sit between
// them for the same reason.
var healRules = []healRule{
	{
		Kind: RepairOrphanContinuer,
		Match: func(in *inferencer, d *damage) bool {
			if d.line.Class != lineclass.Continuer {
				return false
			}
			_, ok := in.stack.FindCompatible(d.line.Keyword, d.apparent)
			return !ok
		},
		Apply: func(in *inferencer, d *damage) (int, Confidence) {
			// Нет совместимой рамки — придумываем её на глубине,
			// подсказанной собственным отступом строки.
			t := d.apparent
			if n := in.stack.Len(); t > n {
				t = n
			}
			if t < 0 {
				t = 0
			}
			in.stack.Truncate(t)
			in.stack.Push(Frame{
				Opener:      d.line.Index,
				Keyword:     d.line.Keyword,
				OpenWidth:   d.width,
				Provisional: true,
			})
			return t, ConfidenceLow
		},
	},
	{
		Kind: RepairStrayStatement,
		Match: func(in *inferencer, d *damage) bool {
			if d.line.Class != lineclass.Plain || d.width != 0 {
				return false
			}
			// Фрейм нулевой ширины ещё открыт — телу есть куда вернуться.
			if in.stack.Len() == 0 || in.stack.At(0).OpenWidth > 0 {
				return false
			}
			return flowKeywords[leadingWord(d.line.Content())]
		},
		Apply: func(in *inferencer, d *damage) (int, Confidence) {
			// Оператор тела выпал на нулевую колонку: глубже его ширины
			// блоки закрыты, остаток стека и есть его блок.
			for in.stack.Len() > 0 && in.stack.Top().OpenWidth > d.width {
				in.stack.Pop()
			}
			return in.stack.Len(), ConfidenceLow
		},
	},
	{
		Kind: RepairMethodAlign,
		Match: func(in *inferencer, d *damage) bool {
			if d.line.Class != lineclass.Opener || d.line.Keyword != lineclass.KwDef {
				return false
			}
			idx, ok := in.stack.FindClass(d.width)
			return ok && d.width <= in.stack.At(idx).OpenWidth
		},
		Apply: func(in *inferencer, d *damage) (int, Confidence) {
			// def на ширине своего class — метод, съехавший из тела.
			idx, _ := in.stack.FindClass(d.width)
			in.stack.Truncate(idx + 1)
			return in.stack.Len(), ConfidenceLow
		},
	},
	{
		Kind: RepairIndentClamp,
		Match: func(in *inferencer, d *damage) bool {
			if d.line.Class == lineclass.Continuer {
				return false
			}
			if in.anchored() || d.width <= in.prevWidth {
				return false
			}
			return d.width-in.prevWidth > in.unitW
		},
		Apply: func(in *inferencer, d *damage) (int, Confidence) {
			// Прыжок без открывающего заголовка: ровно один уровень вглубь.
			in.stack.Push(Frame{
				Opener:      d.line.Index,
				OpenWidth:   in.prevWidth,
				Provisional: true,
			})
			return in.stack.Len(), ConfidenceLow
		},
	},
	{
		Kind: RepairDedentClamp,
		Match: func(in *inferencer, d *damage) bool {
			if d.line.Class == lineclass.Continuer {
				return false
			}
			if d.width >= in.prevWidth {
				return false
			}
			// Шаг дедента меряем в единицах самого файла: ровная широкая
			// индентация — не повреждение.
			unit := in.detW
			if unit <= 0 {
				unit = in.unitW
			}
			drop := (in.prevWidth - d.width) / unit
			return in.prevDepth-drop < 0
		},
		Apply: func(in *inferencer, d *damage) (int, Confidence) {
			in.stack.PopAll()
			return 0, ConfidenceHigh
		},
	},
}
