package lineclass

// Keyword identifies a block-relevant Python keyword at the start of a
// logical line. KwNone means the line starts with something else.
type Keyword uint8

const (
	// KwNone marks a line that starts with no block-relevant keyword.
	KwNone Keyword = iota
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwExcept represents the 'except' keyword.
	KwExcept // except
	// KwFinally represents the 'finally' keyword.
	KwFinally // finally
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwMatch represents the 'match' soft keyword.
	KwMatch // match
	// KwCase represents the 'case' soft keyword.
	KwCase // case
	// KwAsync represents the 'async' prefix (async def / async for / async with).
	KwAsync // async
)

var keywords = map[string]Keyword{
	"if":      KwIf,
	"elif":    KwElif,
	"else":    KwElse,
	"for":     KwFor,
	"while":   KwWhile,
	"try":     KwTry,
	"except":  KwExcept,
	"finally": KwFinally,
	"with":    KwWith,
	"def":     KwDef,
	"class":   KwClass,
	"match":   KwMatch,
	"case":    KwCase,
	"async":   KwAsync,
}

var names = map[Keyword]string{
	KwIf:      "if",
	KwElif:    "elif",
	KwElse:    "else",
	KwFor:     "for",
	KwWhile:   "while",
	KwTry:     "try",
	KwExcept:  "except",
	KwFinally: "finally",
	KwWith:    "with",
	KwDef:     "def",
	KwClass:   "class",
	KwMatch:   "match",
	KwCase:    "case",
	KwAsync:   "async",
}

// LookupKeyword возвращает Keyword и bool если это ключевое слово блока.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(word string) (Keyword, bool) {
	k, ok := keywords[word]
	return k, ok
}

func (k Keyword) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "none"
}

// IsContinuer reports whether the keyword starts an else/elif/except/finally
// class clause: a line that must align with an already-open block.
func (k Keyword) IsContinuer() bool {
	switch k {
	case KwElif, KwElse, KwExcept, KwFinally:
		return true
	}
	return false
}

// compat maps each continuer keyword to the opener keywords it may attach
// to. Per the Python grammar: elif follows if/elif; else follows
// if/elif/for/while/try/except; except and finally follow try/except/else.
var compat = map[Keyword][]Keyword{
	KwElif:    {KwIf, KwElif},
	KwElse:    {KwIf, KwElif, KwFor, KwWhile, KwTry, KwExcept},
	KwExcept:  {KwTry, KwExcept},
	KwFinally: {KwTry, KwExcept, KwElse},
}

// AttachTarget returns the canonical opener keyword a continuer belongs to:
// the block kind a healer should assume when it has to invent the missing
// opener for an orphaned clause.
func AttachTarget(continuer Keyword) Keyword {
	if ks, ok := compat[continuer]; ok && len(ks) > 0 {
		return ks[0]
	}
	return KwNone
}

// CanAttach reports whether a continuer line may reopen a block whose
// opener started with the given keyword.
func CanAttach(continuer, opener Keyword) bool {
	for _, k := range compat[continuer] {
		if k == opener {
			return true
		}
	}
	return false
}
