package token

var keywords = map[string]Kind{
	"do":     KwDo,
	"end":    KwEnd,
	"fn":     KwFn,
	"when":   KwWhen,
	"in":     KwIn,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"true":   KwTrue,
	"false":  KwFalse,
	"nil":    KwNil,
	"rescue": KwRescue,
	"catch":  KwCatch,
	"after":  KwAfter,
	"else":   KwElse,
}

// LookupKeyword returns the keyword kind for ident, if any.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// BlockKeyword reports whether the kind opens a secondary block section
// inside do/end, such as `rescue` in try.
func BlockKeyword(k Kind) bool {
	switch k {
	case KwRescue, KwCatch, KwAfter, KwElse:
		return true
	default:
		return false
	}
}
