package pytext

import "strings"

// SegKind classifies one segment of a physical line.
type SegKind uint8

const (
	// SegCode — исполняемый код, безопасен для текстовых трансформаций.
	SegCode SegKind = iota
	// SegString — строковый литерал вместе с кавычками и префиксом.
	SegString
	// SegComment — от символа # до конца строки.
	SegComment
)

// Segment is one contiguous slice of a line.
type Segment struct {
	Kind SegKind
	Text string
}

// stringPrefix reports how many bytes before the quote belong to a literal
// prefix (r, b, u, f and combinations).
func stringPrefix(line string, quotePos int) int {
	n := 0
	for quotePos-n-1 >= 0 {
		switch line[quotePos-n-1] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
			n++
			continue
		}
		break
	}
	if n > 2 {
		n = 2
	}
	// Префикс считается только если перед ним не идентификатор.
	if p := quotePos - n - 1; n > 0 && p >= 0 && isIdentByte(line[p]) {
		return 0
	}
	return n
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Split segments a single physical line. Triple-quoted literals that span
// lines are the scanner's business; here an unterminated string simply runs
// to the end of the line.
func Split(line string) []Segment {
	var segs []Segment
	codeStart := 0

	flushCode := func(end int) {
		if end > codeStart {
			segs = append(segs, Segment{Kind: SegCode, Text: line[codeStart:end]})
		}
	}

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == '#':
			flushCode(i)
			segs = append(segs, Segment{Kind: SegComment, Text: line[i:]})
			return segs
		case c == '\'' || c == '"':
			start := i - stringPrefix(line, i)
			flushCode(start)
			end := stringEnd(line, i)
			segs = append(segs, Segment{Kind: SegString, Text: line[start:end]})
			i = end
			codeStart = i
		default:
			i++
		}
	}
	flushCode(len(line))
	return segs
}

// stringEnd returns the index just past the literal opened at quotePos.
func stringEnd(line string, quotePos int) int {
	quote := line[quotePos]
	// Тройные кавычки: ищем закрытие на этой же строке, иначе до конца.
	triple := strings.Repeat(string(quote), 3)
	if strings.HasPrefix(line[quotePos:], triple) {
		for i := quotePos + 3; i < len(line); i++ {
			if line[i] == '\\' {
				i++
				continue
			}
			if strings.HasPrefix(line[i:], triple) {
				return i + 3
			}
		}
		return len(line)
	}
	for i := quotePos + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(line)
}

// Join reassembles segments into a line.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// MapCode applies fn to every code segment and reassembles the line.
// Strings and comments pass through untouched.
func MapCode(line string, fn func(string) string) string {
	segs := Split(line)
	for i := range segs {
		if segs[i].Kind == SegCode {
			segs[i].Text = fn(segs[i].Text)
		}
	}
	return Join(segs)
}

// StripLiterals replaces string literal contents with spaces and drops the
// comment, keeping byte offsets of the code intact. Usage scanners search
// the result without tripping over quoted text.
func StripLiterals(line string) string {
	segs := Split(line)
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case SegCode:
			b.WriteString(s.Text)
		case SegString:
			b.WriteString(strings.Repeat(" ", len(s.Text)))
		case SegComment:
			b.WriteString(strings.Repeat(" ", len(s.Text)))
		}
	}
	return b.String()
}
