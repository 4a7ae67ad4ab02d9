package indent

import (
	"retab/internal/lineclass"
)

// Frame is one open block on the BlockStack.
type Frame struct {
	Opener    int                // logical line index of the opener
	Keyword   lineclass.Keyword  // opener kind; updated when a continuer reopens it
	Depth     int                // depth the opener itself sits at
	OpenWidth int                // normalized apparent width of the opener line
	// Provisional frames are inserted by the healer to make a mismatched
	// line fit; they did not originate from a confidently recognized opener.
	Provisional bool
}

// BlockStack is the ordered sequence of open block frames, innermost last.
// Frame depths are strictly increasing: a frame pushed with the stack at
// length n sits at depth n, and its body lines sit at depth n+1.
type BlockStack struct {
	frames []Frame
}

// Len returns the number of open frames, which is also the depth assigned
// to statements inside the innermost block.
func (s *BlockStack) Len() int {
	return len(s.frames)
}

// Push opens a new frame. The frame's Depth must equal the current length;
// this keeps the strictly-increasing invariant without extra bookkeeping.
func (s *BlockStack) Push(f Frame) {
	f.Depth = len(s.frames)
	s.frames = append(s.frames, f)
}

// Pop removes the innermost frame. No-op on an empty stack.
func (s *BlockStack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// PopAll drops every open frame (dedent clamped to the root).
func (s *BlockStack) PopAll() {
	s.frames = s.frames[:0]
}

// Top returns a pointer to the innermost frame, or nil when empty.
func (s *BlockStack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// Truncate keeps the outermost n frames.
func (s *BlockStack) Truncate(n int) {
	if n < len(s.frames) {
		s.frames = s.frames[:n]
	}
}

// At returns a pointer to the frame at position i (0 = outermost).
func (s *BlockStack) At(i int) *Frame {
	return &s.frames[i]
}

// FindClass searches innermost-out for a class frame that opened at or
// before the given width. Frames deeper than the width are skipped: a line
// at that width has already dedented out of them.
func (s *BlockStack) FindClass(width int) (int, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].OpenWidth > width {
			continue
		}
		if s.frames[i].Keyword == lineclass.KwClass {
			return i, true
		}
	}
	return -1, false
}

// FindCompatible searches innermost-out for a frame a continuer keyword may
// attach to, preferring frames at or below the continuer's apparent depth.
// Width is advisory: when no frame at a compatible depth exists, the
// innermost compatible frame wins regardless of width. Returns the frame
// index and whether one was found.
func (s *BlockStack) FindCompatible(kw lineclass.Keyword, apparentDepth int) (int, bool) {
	fallback := -1
	for i := len(s.frames) - 1; i >= 0; i-- {
		if !lineclass.CanAttach(kw, s.frames[i].Keyword) {
			continue
		}
		if s.frames[i].Depth <= apparentDepth {
			return i, true
		}
		if fallback == -1 {
			fallback = i
		}
	}
	if fallback >= 0 {
		return fallback, true
	}
	return -1, false
}
