package indent

import (
	"fmt"

	"retab/internal/diag"
)

// RepairKind identifies which healer rule produced a RepairEvent.
type RepairKind uint8

const (
	// RepairOrphanContinuer — continuer clause with no compatible open
	// frame; a provisional frame was inserted.
	RepairOrphanContinuer RepairKind = iota
	// RepairContinuerAlign — continuer attached to a compatible frame but
	// its apparent width disagreed with the opener's.
	RepairContinuerAlign
	// RepairIndentClamp — unanchored indent jump clamped to one unit.
	RepairIndentClamp
	// RepairDedentClamp — dedent past the outermost frame clamped to 0.
	RepairDedentClamp
	// RepairTabNormalize — mixed or foreign tab/space leading whitespace
	// normalized before width comparison.
	RepairTabNormalize
	// RepairStrayStatement — return/break/continue/raise/pass fell out to
	// column zero while its block was still open; moved back inside.
	RepairStrayStatement
	// RepairMethodAlign — def at the same width as its enclosing class
	// re-indented to method depth.
	RepairMethodAlign
)

func (k RepairKind) String() string {
	switch k {
	case RepairOrphanContinuer:
		return "orphan continuer"
	case RepairContinuerAlign:
		return "continuer realign"
	case RepairIndentClamp:
		return "clamped indent"
	case RepairDedentClamp:
		return "dedent clamp"
	case RepairTabNormalize:
		return "tab normalization"
	case RepairStrayStatement:
		return "stray statement"
	case RepairMethodAlign:
		return "method realign"
	}
	return "unknown"
}

// Code maps the repair kind onto its stable diagnostic code.
func (k RepairKind) Code() diag.Code {
	switch k {
	case RepairOrphanContinuer:
		return diag.RepairOrphanContinuer
	case RepairContinuerAlign:
		return diag.RepairContinuerAlign
	case RepairIndentClamp:
		return diag.RepairIndentClamp
	case RepairDedentClamp:
		return diag.RepairDedentClamp
	case RepairTabNormalize:
		return diag.RepairTabNormalize
	case RepairStrayStatement:
		return diag.RepairStrayStatement
	case RepairMethodAlign:
		return diag.RepairMethodAlign
	}
	return diag.RepairInfo
}

// Confidence tags how sure the healer was about a correction.
type Confidence uint8

const (
	// ConfidenceHigh — правило однозначно определило глубину.
	ConfidenceHigh Confidence = iota
	// ConfidenceLow — глубина выбрана эвристикой (provisional frame).
	ConfidenceLow
)

func (c Confidence) String() string {
	if c == ConfidenceLow {
		return "low"
	}
	return "high"
}

// RepairEvent records a single healer intervention. Events are collected
// for diagnostics and testability; the emitted file does not depend on
// them being observed.
type RepairEvent struct {
	Line       int // logical line index
	PhysLine   int // 1-based physical line of the statement start
	Kind       RepairKind
	FromWidth  int // apparent (normalized) width before the repair
	Depth      int // corrected depth
	Confidence Confidence
}

func (e RepairEvent) String() string {
	return fmt.Sprintf("line %d: %s -> depth %d (width %d, confidence %s)",
		e.PhysLine, e.Kind, e.Depth, e.FromWidth, e.Confidence)
}
