package indent

import (
	"fmt"

	"retab/internal/diag"
	"retab/internal/lineclass"
	"retab/internal/scan"
	"retab/internal/source"
)

// Status classifies the outcome of one engine run.
type Status uint8

const (
	// StatusClean — no structural repair was needed. The emitted text may
	// still differ from the input: pure reindentation is not a repair.
	StatusClean Status = iota
	// StatusRepaired — at least one healer rule fired.
	StatusRepaired
	// StatusRejected — the file cannot be processed safely; no output.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusRepaired:
		return "repaired"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Options carries the per-run collaborators.
type Options struct {
	Reporter diag.Reporter
}

// Result is the outcome of one engine run over a single file.
type Result struct {
	Status Status
	// Output is the canonical text; nil when Status is StatusRejected.
	Output []byte
	// Events lists every healer intervention in line order.
	Events []RepairEvent
	// Lines are the scanned logical lines with resolved depths.
	Lines []scan.LogicalLine
	// DetectedTabs/DetectedWidth describe the file's own dominant unit.
	DetectedTabs  bool
	DetectedWidth int
	// RejectLine/RejectReason are set when Status is StatusRejected.
	RejectLine   int
	RejectReason string
}

// Run executes the full pipeline for one file: scan into logical lines,
// infer depths with structural healing, emit canonical text. Only an
// invalid Config produces an error; file damage is expressed through the
// Result status.
func Run(file *source.File, cfg Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sres := scan.Scan(file, scan.Options{Reporter: opts.Reporter})
	res := &Result{Lines: sres.Lines}

	// Незакрытая конструкция до EOF — чинить нечего, отклоняем файл целиком.
	if un := sres.UnclosedString; un != nil {
		res.Status = StatusRejected
		res.RejectLine = un.Line
		res.RejectReason = fmt.Sprintf("triple-quoted string opened on line %d is never closed", un.Line)
		return res, nil
	}
	if un := sres.UnclosedBracket; un != nil {
		res.Status = StatusRejected
		res.RejectLine = un.Line
		res.RejectReason = fmt.Sprintf("bracket %q opened on line %d is never closed", un.What, un.Line)
		return res, nil
	}

	in := newInferencer(cfg, sres.Lines, opts.Reporter)
	in.run(sres.Lines)

	res.Events = in.events
	res.DetectedTabs = in.detTabs
	res.DetectedWidth = in.detW
	res.Output = emit(file, sres.Lines, cfg, in.tabW)
	if len(res.Events) > 0 {
		res.Status = StatusRepaired
	}
	return res, nil
}

// inferencer drives one pass over the logical lines, maintaining the block
// stack and the window of previous-statement state the healer rules key on.
type inferencer struct {
	cfg      Config
	unitW    int // width of one canonical unit
	tabW     int // tab stop used when expanding leading whitespace
	detTabs  bool
	detW     int // detected per-level width of this file
	stack    BlockStack
	events   []RepairEvent
	reporter diag.Reporter

	// Состояние предыдущего оператора (пустые строки и комментарии не в счёт).
	prevWidth int
	prevDepth int
	prevClass lineclass.Class
}

func newInferencer(cfg Config, lines []scan.LogicalLine, rep diag.Reporter) *inferencer {
	in := &inferencer{
		cfg:       cfg,
		unitW:     cfg.UnitWidth(),
		reporter:  rep,
		prevClass: lineclass.Plain,
	}
	in.detTabs = detectTabs(lines)
	if cfg.DetectTabs && in.detTabs {
		// В tab-файле один таб — один канонический уровень.
		in.tabW = in.unitW
	} else {
		in.tabW = 8
	}
	in.detW = detectWidth(lines, in.tabW, in.unitW)
	return in
}

func (in *inferencer) run(lines []scan.LogicalLine) {
	for i := range lines {
		ll := &lines[i]
		switch ll.Class {
		case lineclass.Blank:
			ll.Depth = 0
		case lineclass.Comment:
			// Комментарий не двигает стек: глубина текущего тела.
			ll.Depth = in.stack.Len()
			in.noteTabs(ll, ll.Depth)
		default:
			in.resolve(ll)
		}
	}
}

// resolve assigns a depth to one statement. Healer rules get the first look;
// when none claims the line the regular stack walk applies.
func (in *inferencer) resolve(ll *scan.LogicalLine) {
	d := damage{line: ll, width: indentWidth(ll.Indent(), in.tabW)}
	if in.detW > 0 {
		d.apparent = d.width / in.detW
	}
	mixed := needsTabNormalize(ll.Indent(), in.cfg.Unit)

	depth, healed := in.heal(&d)
	if !healed {
		if ll.Class == lineclass.Continuer {
			depth = in.attach(ll, &d)
		} else {
			depth = in.statement(&d)
		}
	}
	ll.Depth = depth
	if mixed {
		in.record(ll, RepairTabNormalize, d.width, depth, ConfidenceHigh)
	}

	if ll.Class == lineclass.Opener {
		in.stack.Push(Frame{Opener: ll.Index, Keyword: ll.Keyword, OpenWidth: d.width})
	}
	in.prevWidth = d.width
	in.prevDepth = depth
	in.prevClass = ll.Class
}

// heal runs the ordered rule table; first match wins.
func (in *inferencer) heal(d *damage) (int, bool) {
	for i := range healRules {
		r := &healRules[i]
		if !r.Match(in, d) {
			continue
		}
		depth, conf := r.Apply(in, d)
		in.record(d.line, r.Kind, d.width, depth, conf)
		return depth, true
	}
	return 0, false
}

// attach re-anchors a continuer clause onto its compatible frame. The frame
// survives (its body continues under the clause) and adopts the clause
// keyword, so chains like try/except/except/finally resolve naturally.
func (in *inferencer) attach(ll *scan.LogicalLine, d *damage) int {
	idx, ok := in.stack.FindCompatible(ll.Keyword, d.apparent)
	if !ok {
		// Rule table guarantees a frame exists by the time we get here.
		return in.stack.Len()
	}
	in.stack.Truncate(idx + 1)
	f := in.stack.At(idx)
	f.Keyword = ll.Keyword
	if d.width != f.OpenWidth {
		in.record(ll, RepairContinuerAlign, d.width, f.Depth, ConfidenceHigh)
	}
	return f.Depth
}

// statement resolves a plain line or opener by the regular stack walk.
func (in *inferencer) statement(d *damage) int {
	if !in.anchored() && d.width > in.prevWidth {
		// Небольшой неякорный сдвиг вглубь: молчаливая provisional-рамка,
		// чтобы последующий дедент вернулся на прежний уровень.
		in.stack.Push(Frame{
			Opener:      d.line.Index,
			OpenWidth:   in.prevWidth,
			Provisional: true,
		})
		return in.stack.Len()
	}
	for in.stack.Len() > 0 && d.width <= in.stack.Top().OpenWidth {
		in.stack.Pop()
	}
	return in.stack.Len()
}

// anchored reports whether the previous statement opened a suite, which
// legitimizes any indent increase on the current line.
func (in *inferencer) anchored() bool {
	return in.prevClass == lineclass.Opener || in.prevClass == lineclass.Continuer
}

func (in *inferencer) noteTabs(ll *scan.LogicalLine, depth int) {
	if needsTabNormalize(ll.Indent(), in.cfg.Unit) {
		in.record(ll, RepairTabNormalize, indentWidth(ll.Indent(), in.tabW), depth, ConfidenceHigh)
	}
}

func (in *inferencer) record(ll *scan.LogicalLine, kind RepairKind, width, depth int, conf Confidence) {
	ev := RepairEvent{
		Line:       ll.Index,
		PhysLine:   ll.First().Num,
		Kind:       kind,
		FromWidth:  width,
		Depth:      depth,
		Confidence: conf,
	}
	in.events = append(in.events, ev)
	if in.reporter != nil {
		diag.ReportWarning(in.reporter, kind.Code(), ll.Span, ev.String())
	}
}
