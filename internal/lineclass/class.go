package lineclass

// Class categorizes one logical line for depth inference.
type Class uint8

const (
	// Plain is any statement that neither opens nor continues a block.
	Plain Class = iota
	// Blank is an empty (or whitespace-only) line.
	Blank
	// Comment is a line whose content is a single '#' comment.
	Comment
	// Opener is a block header: its suite nests one level deeper.
	Opener
	// Continuer reopens an existing block at the opener's own depth
	// (else/elif/except/finally-class clauses).
	Continuer
)

func (c Class) String() string {
	switch c {
	case Plain:
		return "plain"
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Opener:
		return "opener"
	case Continuer:
		return "continuer"
	}
	return "unknown"
}
