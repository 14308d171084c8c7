package token

import (
	"github.com/l4u/elixir/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an atom, numeric, boolean, nil or
// string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case AtomLit, IntLit, FloatLit, StringLit, CharListLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, PlusPlus, MinusMinus, LtGt,
		EqEq, BangEq, EqEqEq, BangEqEq, Lt, LtEq, Gt, GtEq,
		Bang, AmpAmp, PipePipe,
		Assign, Arrow, Pipe, DotDot, Dot, Comma, Colon, Semicolon,
		LParen, RParen, LBracket, RBracket, LBrace, RBrace, At:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwDo, KwEnd, KwFn, KwWhen, KwIn, KwAnd, KwOr, KwNot,
		KwTrue, KwFalse, KwNil, KwRescue, KwCatch, KwAfter, KwElse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is a plain identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTerminator reports whether the token separates expressions.
func (t Token) IsTerminator() bool {
	return t.Kind == Newline || t.Kind == Semicolon
}
