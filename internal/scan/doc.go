// Package scan splits a Python source file into logical lines.
//
// The first pass classifies physical lines (leading whitespace, content,
// block keyword). The second pass merges physical lines whose statement is
// still open — inside brackets, after a trailing backslash, or inside a
// triple-quoted string — into one LogicalLine with a fixed physical range.
// The scanner never fails: structurally broken input produces flagged
// logical lines, and unterminated constructs at EOF are surfaced to the
// caller instead of being guessed around.
package scan
