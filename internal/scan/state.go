package scan

// openBracket запоминает, где открылась скобка, для диагностики на EOF.
type openBracket struct {
	ch   byte
	line int // 1-based physical line number
}

// lineState carries tokenizer state across the physical lines of one
// logical statement: the open-bracket stack, triple-quoted string state and
// a pending backslash continuation. Strings and comments are opaque —
// brackets inside them never count.
type lineState struct {
	brackets   []openBracket
	triple     byte // 0 outside a triple-quoted string, else the quote char
	tripleLine int  // physical line where the triple string opened
	backslash  bool

	// per-logical-line facts, reset by resetStmt
	lastCode    byte // last non-space byte outside comments
	strayCloser bool // unmatched closing bracket seen
	strayLine   int
	delta       int // net bracket delta contributed by the statement
}

// open reports whether the current statement is still unfinished.
func (st *lineState) open() bool {
	return len(st.brackets) > 0 || st.triple != 0 || st.backslash
}

func (st *lineState) resetStmt() {
	st.lastCode = 0
	st.strayCloser = false
	st.strayLine = 0
	st.delta = 0
}

// feed scans one physical line's content (indent already stripped) and
// updates the state. Never fails: damaged input only sets flags.
func (st *lineState) feed(line string, num int) {
	st.backslash = false
	i := 0

	// Продолжение triple-quoted строки с предыдущей строки.
	if st.triple != 0 {
		end, closed := findTripleClose(line, 0, st.triple)
		if !closed {
			st.noteCode(lastNonSpace(line))
			return
		}
		st.triple = 0
		st.noteCode(line[end-1])
		i = end
	}

	for i < len(line) {
		ch := line[i]
		switch {
		case ch == '#':
			// комментарий до конца строки
			return

		case ch == '\'' || ch == '"':
			if i+2 < len(line) && line[i+1] == ch && line[i+2] == ch {
				end, closed := findTripleClose(line, i+3, ch)
				if !closed {
					st.triple = ch
					st.tripleLine = num
					st.noteCode(lastNonSpace(line))
					return
				}
				st.noteCode(ch)
				i = end
				continue
			}
			end, closed := findStringClose(line, i+1, ch)
			if !closed {
				// незакрытая однострочная строка: терпим, остаток — строка
				st.noteCode(lastNonSpace(line))
				return
			}
			st.noteCode(ch)
			i = end
			continue

		case ch == '(' || ch == '[' || ch == '{':
			st.brackets = append(st.brackets, openBracket{ch: ch, line: num})
			st.delta++
			st.noteCode(ch)

		case ch == ')' || ch == ']' || ch == '}':
			if len(st.brackets) > 0 {
				st.brackets = st.brackets[:len(st.brackets)-1]
				st.delta--
			} else if !st.strayCloser {
				st.strayCloser = true
				st.strayLine = num
			}
			st.noteCode(ch)

		case ch == '\\' && i == len(line)-1:
			// перенос строки; не считается кодом
			st.backslash = true

		case ch != ' ' && ch != '\t':
			st.noteCode(ch)
		}
		i++
	}
}

func (st *lineState) noteCode(b byte) {
	if b != 0 {
		st.lastCode = b
	}
}

// findStringClose scans for the closing quote of a single-line string
// starting right after the opening quote, honoring backslash escapes.
// Returns the index past the closing quote.
func findStringClose(line string, from int, quote byte) (int, bool) {
	i := from
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1, true
		default:
			i++
		}
	}
	return len(line), false
}

// findTripleClose scans for the closing triple quote, honoring escapes.
func findTripleClose(line string, from int, quote byte) (int, bool) {
	i := from
	for i < len(line) {
		switch {
		case line[i] == '\\':
			i += 2
		case line[i] == quote && i+2 < len(line) && line[i+1] == quote && line[i+2] == quote:
			return i + 3, true
		default:
			i++
		}
	}
	return len(line), false
}

func lastNonSpace(line string) byte {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] != ' ' && line[i] != '\t' {
			return line[i]
		}
	}
	return 0
}
