// Package indent is the structural repair and reindentation engine.
//
// It assigns every logical line an intended nesting depth using an explicit
// stack of open block frames, repairs local damage (orphan continuer
// clauses, unanchored indent jumps, dedents past the root, tab/space
// mixing) through an ordered list of healer rules, and re-emits the file
// with the canonical indentation unit at every level. The engine never
// rejects structurally damaged input: every logical line gets a depth, and
// each intervention is recorded as a RepairEvent. Rejection is reserved for
// input that cannot be tokenized at all (unterminated brackets or strings
// running to EOF, undecodable encodings, invalid configuration).
package indent
