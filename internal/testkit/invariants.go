package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"retab/internal/scan"
	"retab/internal/source"
)

// CheckScanInvariants runs a minimal set of span invariants on a scanned file:
// 1) every logical line span is within file content bounds
// 2) physical lines of a logical line are contiguous and ordered by Num
// 3) logical line spans do not overlap and appear in source order
func CheckScanInvariants(res *scan.Result, sf *source.File) error {
	if res == nil || sf == nil {
		return fmt.Errorf("nil scan result or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i := range res.Lines {
		ll := &res.Lines[i]
		sp := ll.Span
		if sp.File != sf.ID {
			return fmt.Errorf("line %d: span points to different file id: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("line %d: inverted span %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("line %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("line %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if len(ll.Phys) == 0 {
			return fmt.Errorf("line %d: logical line without physical lines", i)
		}
		prevNum := ll.Phys[0].Num - 1
		for j, p := range ll.Phys {
			if p.Num != prevNum+1 {
				return fmt.Errorf("line %d: physical line %d has number %d, want %d", i, j, p.Num, prevNum+1)
			}
			prevNum = p.Num
			if p.Span.Start < sp.Start || p.Span.End > sp.End {
				return fmt.Errorf("line %d: physical span %v escapes logical span %v", i, p.Span, sp)
			}
		}
	}
	return nil
}
