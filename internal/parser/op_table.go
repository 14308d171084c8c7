package parser

import "github.com/l4u/elixir/internal/token"

// Binary operator tiers, loosest first. `when` sits below `=` so a clause
// head like `x = y when g` keeps the whole match as the pattern; `in`
// sits below `..` so `x in 1..10` takes the range as its right-hand side.
const (
	precWhen       = 1  // when (right)
	precMatch      = 2  // = (right)
	precOr         = 3  // or ||
	precAnd        = 4  // and && xor
	precEquality   = 5  // == != === !==
	precRelational = 6  // < > <= >=
	precIn         = 7  // in, not in
	precConcat     = 8  // ++ -- <> .. (right)
	precAdditive   = 9  // + -
	precMultiply   = 10 // * /
)

// binaryPrec returns the operator tier and right-associativity for the
// token, or -1 when it is not a binary operator. `xor` has no token of
// its own; it reaches the parser as an identifier and is recognized here
// by spelling.
func binaryPrec(tok token.Token) (int, bool) {
	switch tok.Kind {
	case token.KwWhen:
		return precWhen, true
	case token.Assign:
		return precMatch, true
	case token.KwOr, token.PipePipe:
		return precOr, false
	case token.KwAnd, token.AmpAmp:
		return precAnd, false
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality, false
	case token.Lt, token.Gt, token.LtEq, token.GtEq:
		return precRelational, false
	case token.KwIn, token.KwNot:
		// `not` is binary only as the start of `not in`; parseExpr
		// verifies the `in` after consuming it.
		return precIn, false
	case token.PlusPlus, token.MinusMinus, token.LtGt, token.DotDot:
		return precConcat, true
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash:
		return precMultiply, false
	case token.Ident:
		if tok.Text == "xor" {
			return precAnd, false
		}
		return -1, false
	default:
		return -1, false
	}
}

// opName maps an operator token to its atom spelling in the quoted tree.
func opName(tok token.Token) string {
	switch tok.Kind {
	case token.KwWhen:
		return "when"
	case token.Assign:
		return "="
	case token.KwOr:
		return "or"
	case token.PipePipe:
		return "||"
	case token.KwAnd:
		return "and"
	case token.AmpAmp:
		return "&&"
	case token.KwIn:
		return "in"
	case token.KwNot:
		return "not"
	case token.EqEq:
		return "=="
	case token.BangEq:
		return "!="
	case token.EqEqEq:
		return "==="
	case token.BangEqEq:
		return "!=="
	case token.Lt:
		return "<"
	case token.Gt:
		return ">"
	case token.LtEq:
		return "<="
	case token.GtEq:
		return ">="
	case token.PlusPlus:
		return "++"
	case token.MinusMinus:
		return "--"
	case token.LtGt:
		return "<>"
	case token.DotDot:
		return ".."
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.Bang:
		return "!"
	default:
		return tok.Text
	}
}

// isUnaryStart reports whether the token opens a prefix operator.
func isUnaryStart(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Bang, token.KwNot:
		return true
	default:
		return false
	}
}

// isNoParenArgStart reports whether the token can begin an argument of a
// call written without parentheses. Tokens that could continue the
// expression as a binary operator are excluded, so `a - b` stays a
// subtraction and `a not in b` stays a membership test; a leading signed
// literal or `not` in that position needs parentheses.
func isNoParenArgStart(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident:
		return tok.Text != "xor"
	case token.UpIdent, token.IntLit, token.FloatLit, token.StringLit,
		token.CharListLit, token.AtomLit,
		token.KwTrue, token.KwFalse, token.KwNil,
		token.LBracket, token.LBrace, token.KwFn, token.At,
		token.KeywordKey, token.Bang:
		return true
	default:
		return false
	}
}
