package lexer

import (
	"bytes"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/token"
)

// operatorAtoms lists the operator spellings that form atoms like :+ or
// :===, longest first so matching stays greedy.
var operatorAtoms = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "<>", "++", "--", "..", "->", "&&", "||",
	"+", "-", "*", "/", "<", ">", "!", "=", "|", ".",
}

// scanAtomOrColon scans :name, :"quoted", operator atoms, or falls back to
// a bare Colon token. Token.Text holds the atom name without the colon.
func (lx *Lexer) scanAtomOrColon() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // ':'

	b := lx.cursor.Peek()
	switch {
	case b == '"':
		return lx.scanQuotedAtom(start)

	case isIdentStartByte(b) || b >= utf8RuneSelf:
		return lx.scanNamedAtom(start)

	default:
		rest := lx.file.Content[lx.cursor.Off:]
		for _, op := range operatorAtoms {
			if bytes.HasPrefix(rest, []byte(op)) {
				for range op {
					lx.cursor.Bump()
				}
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.AtomLit, Span: sp, Text: op}
			}
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Colon, Span: sp, Text: ":"}
	}
}

func (lx *Lexer) scanNamedAtom(start Mark) token.Token {
	nameStart := lx.cursor.Mark()
	nonASCII := false
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		if r >= utf8RuneSelf {
			nonASCII = true
		}
		lx.bumpRune()
	}
	switch lx.cursor.Peek() {
	case '?', '!':
		lx.cursor.Bump()
	}

	nameSp := lx.cursor.SpanFrom(nameStart)
	text := string(lx.file.Content[nameSp.Start:nameSp.End])
	if nonASCII {
		text = norm.NFC.String(text)
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.AtomLit, Span: sp, Text: text}
}

func (lx *Lexer) scanQuotedAtom(start Mark) token.Token {
	lx.cursor.Bump() // '"'
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.AtomLit, Span: sp, Text: sb.String()}
		}
		if b == '\\' {
			lx.scanEscapeInto(&sb)
			continue
		}
		if b == '\n' {
			break
		}
		sb.WriteByte(lx.cursor.Bump())
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedAtom, sp, "unterminated quoted atom")
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}
