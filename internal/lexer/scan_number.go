package lexer

import (
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/token"
)

// Supported: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.5, 1.5e-3.
// The fractional dot requires a digit on both sides, so `1..2` lexes as a
// range and `1.foo` as a remote call. An exponent is only legal after a
// fraction. Token.Text keeps the raw lexeme; the parser strips underscores.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.scanBaseDigits(start, func(b byte) bool { return b == '0' || b == '1' })
			case 'o', 'O':
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.scanBaseDigits(start, func(b byte) bool { return b >= '0' && b <= '7' })
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.scanBaseDigits(start, isHex)
			}
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// fraction: dot must be followed by a digit, otherwise it belongs to
	// '..' or a remote call
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}

		if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
			lx.cursor.Bump()
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanBaseDigits(start Mark, valid func(byte) bool) token.Token {
	seen := false
	for {
		b := lx.cursor.Peek()
		if valid(b) {
			seen = true
			lx.cursor.Bump()
			continue
		}
		if b == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}
	sp := lx.cursor.SpanFrom(start)
	if !seen {
		lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
