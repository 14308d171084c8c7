package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/l4u/elixir/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans identifiers, alias segments, keywords and
// keyword-list keys. Names may end in '?' or '!'. Capitalized names become
// UpIdent (alias segments); a name glued to ':' plus whitespace becomes a
// KeywordKey. Unicode identifiers are normalized to NFC.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}

	var upper, nonASCII bool
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		upper = r >= 'A' && r <= 'Z'
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		upper = unicode.IsUpper(r)
		nonASCII = true
	}
	lx.bumpRune()

	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		if r2 >= utf8RuneSelf {
			nonASCII = true
		}
		lx.bumpRune()
	}

	// foo? and foo! are complete names. The bang stays an operator when it
	// starts '!=' so `a!=b` compares instead of naming `a!`.
	if !upper {
		switch lx.cursor.Peek() {
		case '?':
			lx.cursor.Bump()
		case '!':
			if _, b1, ok := lx.cursor.Peek2(); !ok || b1 != '=' {
				lx.cursor.Bump()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if nonASCII {
		text = norm.NFC.String(text)
	}

	if lx.isKeywordKeyColon() {
		lx.cursor.Bump() // ':'
		sp = lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.KeywordKey, Span: sp, Text: text}
	}

	if upper {
		return token.Token{Kind: token.UpIdent, Span: sp, Text: text}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// isKeywordKeyColon reports whether the cursor sits on a ':' that turns the
// preceding name into a keyword-list key: the colon must be glued to the
// name and followed by whitespace or EOF.
func (lx *Lexer) isKeywordKeyColon() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok {
		return lx.cursor.Peek() == ':'
	}
	return b0 == ':' && (b1 == ' ' || b1 == '\t' || b1 == '\n' || b1 == '\r')
}
