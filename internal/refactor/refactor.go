package refactor

import (
	"strings"

	"retab/internal/source"
)

// Result is the outcome of one refactoring pass.
type Result struct {
	// Output is the rewritten content; equals the input when Changed is 0.
	Output []byte
	// Changed counts applied rewrites.
	Changed int
}

// splitLines breaks normalized content into lines, remembering whether the
// file ended with a newline.
func splitLines(file *source.File) (lines []string, hadFinalEOL bool) {
	content := string(file.Content)
	hadFinalEOL = strings.HasSuffix(content, "\n")
	lines = strings.Split(content, "\n")
	if hadFinalEOL {
		lines = lines[:len(lines)-1]
	}
	return lines, hadFinalEOL
}

func joinLines(file *source.File, lines []string, hadFinalEOL bool) []byte {
	text := strings.Join(lines, file.LineEnding())
	if hadFinalEOL {
		text += file.LineEnding()
	}
	return []byte(text)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
