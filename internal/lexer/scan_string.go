package lexer

import (
	"fmt"
	"strings"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/token"
)

// scanString handles "..." literals and """ heredocs. Token.Text carries the
// cooked payload with escapes resolved. Plain strings may span lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '"' && b1 == '"' && b2 == '"' {
		return lx.scanHeredoc(start)
	}
	return lx.scanQuoted(start, '"', token.StringLit, diag.LexUnterminatedString, "unterminated string literal")
}

// scanCharList handles '...' literals, which lex like strings but keep
// their own kind so the parser can build a list of codepoints.
func (lx *Lexer) scanCharList() token.Token {
	start := lx.cursor.Mark()
	return lx.scanQuoted(start, '\'', token.CharListLit, diag.LexUnterminatedString, "unterminated char list literal")
}

func (lx *Lexer) scanQuoted(start Mark, quote byte, kind token.Kind, code diag.Code, errMsg string) token.Token {
	lx.cursor.Bump() // opening quote
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: sb.String()}
		}
		if b == '\\' {
			lx.scanEscapeInto(&sb)
			continue
		}
		sb.WriteByte(lx.cursor.Bump())
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(code, sp, errMsg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}

// scanHeredoc scans a """ docstring. Content starts on the line after the
// opening delimiter and runs up to a line holding only the closing """;
// the closing line's indentation is not part of the payload.
func (lx *Lexer) scanHeredoc(start Mark) token.Token {
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump() // opening """

	// the rest of the opening line is ignored
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedHeredoc, sp, "unterminated heredoc")
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	lx.cursor.Bump() // '\n'

	var sb strings.Builder
	for !lx.cursor.EOF() {
		// closing delimiter check at line start
		m := lx.cursor.Mark()
		for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
			lx.cursor.Bump()
		}
		if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '"' && b1 == '"' && b2 == '"' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: sb.String()}
		}
		lx.cursor.Reset(m)

		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == '\\' {
				lx.scanEscapeInto(&sb)
				continue
			}
			lx.cursor.Bump()
			sb.WriteByte(b)
			if b == '\n' {
				break
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedHeredoc, sp, "unterminated heredoc")
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}

func (lx *Lexer) scanEscapeInto(sb *strings.Builder) {
	escStart := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 's':
		sb.WriteByte(' ')
	case 'a':
		sb.WriteByte('\a')
	case 'b':
		sb.WriteByte('\b')
	case 'e':
		sb.WriteByte(0x1b)
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\\', '"', '\'', '#':
		sb.WriteByte(b)
	case '\n':
		// escaped line break folds away
	case 'x':
		hi := lx.cursor.Peek()
		if !isHex(hi) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "expected hex digits after \\x")
			return
		}
		lx.cursor.Bump()
		val := hexVal(hi)
		if lo := lx.cursor.Peek(); isHex(lo) {
			lx.cursor.Bump()
			val = val*16 + hexVal(lo)
		}
		sb.WriteByte(byte(val))
	default:
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), fmt.Sprintf("unknown escape \\%c", b))
		sb.WriteByte(b)
	}
}
