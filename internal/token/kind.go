package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a significant line break acting as an expression terminator.
	// Consecutive breaks are coalesced into one token.
	Newline

	// Ident represents a lowercase identifier: a variable or local call name.
	Ident
	// UpIdent represents a capitalized identifier, an alias segment.
	UpIdent
	// KeywordKey represents a keyword-list key such as `do:` or `else:`.
	// Text holds the key without the trailing colon.
	KeywordKey

	// AtomLit represents an atom literal such as `:ok` or `:"quoted"`.
	// Text holds the atom name without the leading colon.
	AtomLit
	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token. Text holds the
	// unescaped contents.
	StringLit
	// CharListLit represents a single-quoted list-of-characters literal.
	CharListLit

	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwEnd represents the 'end' keyword.
	KwEnd // end
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwWhen represents the 'when' keyword.
	KwWhen // when
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwAnd represents the strict boolean 'and' operator keyword.
	KwAnd // and
	// KwOr represents the strict boolean 'or' operator keyword.
	KwOr // or
	// KwNot represents the strict boolean 'not' operator keyword.
	KwNot // not
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false
	// KwNil represents the 'nil' literal.
	KwNil // nil
	// KwRescue represents the 'rescue' block keyword.
	KwRescue // rescue
	// KwCatch represents the 'catch' block keyword.
	KwCatch // catch
	// KwAfter represents the 'after' block keyword.
	KwAfter // after
	// KwElse represents the 'else' block keyword.
	KwElse // else

	Plus  // +
	Minus // -
	Star  // *
	Slash // /

	PlusPlus   // ++
	MinusMinus // --
	LtGt       // <>

	EqEq     // ==
	BangEq   // !=
	EqEqEq   // ===
	BangEqEq // !==
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=

	Bang     // !
	AmpAmp   // &&
	PipePipe // ||

	Assign    // =
	Arrow     // ->
	Pipe      // |
	DotDot    // ..
	Dot       // .
	Comma     // ,
	Colon     // :
	Semicolon // ;

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }

	At // @
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Newline:     "Newline",
	Ident:       "Ident",
	UpIdent:     "UpIdent",
	KeywordKey:  "KeywordKey",
	AtomLit:     "AtomLit",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharListLit: "CharListLit",
	KwDo:        "KwDo",
	KwEnd:       "KwEnd",
	KwFn:        "KwFn",
	KwWhen:      "KwWhen",
	KwIn:        "KwIn",
	KwAnd:       "KwAnd",
	KwOr:        "KwOr",
	KwNot:       "KwNot",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwNil:       "KwNil",
	KwRescue:    "KwRescue",
	KwCatch:     "KwCatch",
	KwAfter:     "KwAfter",
	KwElse:      "KwElse",
	Plus:        "Plus",
	Minus:       "Minus",
	Star:        "Star",
	Slash:       "Slash",
	PlusPlus:    "PlusPlus",
	MinusMinus:  "MinusMinus",
	LtGt:        "LtGt",
	EqEq:        "EqEq",
	BangEq:      "BangEq",
	EqEqEq:      "EqEqEq",
	BangEqEq:    "BangEqEq",
	Lt:          "Lt",
	LtEq:        "LtEq",
	Gt:          "Gt",
	GtEq:        "GtEq",
	Bang:        "Bang",
	AmpAmp:      "AmpAmp",
	PipePipe:    "PipePipe",
	Assign:      "Assign",
	Arrow:       "Arrow",
	Pipe:        "Pipe",
	DotDot:      "DotDot",
	Dot:         "Dot",
	Comma:       "Comma",
	Colon:       "Colon",
	Semicolon:   "Semicolon",
	LParen:      "LParen",
	RParen:      "RParen",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	At:          "At",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}
