package diag

import (
	"sort"

	"retab/internal/source"
)

// Bag accumulates diagnostics up to a fixed cap. Once the cap is reached
// Add becomes a no-op: a badly damaged file must not drown the report.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add кладёт диагностику в сумку. false — лимит исчерпан, запись отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap возвращает настроенный лимит.
func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) atLeast(sev Severity) bool {
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

// HasErrors — есть ли хотя бы одна диагностика уровня Error.
func (b *Bag) HasErrors() bool {
	return b.atLeast(SevError)
}

// HasWarnings — есть ли хотя бы одна диагностика уровня Warning или выше.
func (b *Bag) HasWarnings() bool {
	return b.atLeast(SevWarning)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items отдаёт внутренний срез без копии; менять его нельзя.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge доливает содержимое другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// Sort даёт детерминированный порядок вывода: файл, позиция, severity по
// убыванию, код по возрастанию.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup схлопывает повторы: одинаковый код на одинаковом Primary.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := key{code: d.Code, span: d.Primary}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, d)
	}
	b.items = kept
}
