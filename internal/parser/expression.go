package parser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/syntax"
	"github.com/l4u/elixir/internal/token"
)

// parseExpr is the Pratt loop over binary operators. allowDo controls
// whether a do/end block may attach to the expression: statement
// positions and delimited interiors allow it, arguments of calls written
// without parentheses do not, so in `def add(a, b) do` the block belongs
// to def, not to add.
func (p *Parser) parseExpr(minPrec int, allowDo bool) (syntax.Term, bool) {
	left, ok := p.parseUnary(allowDo)
	if !ok {
		return nil, false
	}

	for {
		tok := p.lx.Peek()
		prec, rightAssoc := binaryPrec(tok)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		if opTok.Kind == token.KwNot {
			// Binary `not` exists only as the first half of `not in`.
			if !p.at(token.KwIn) {
				p.errAt(diag.SynUnexpectedToken, opTok.Span, "unexpected \"not\": only \"not in\" is a binary operator")
				return nil, false
			}
			inTok := p.advance()
			p.skipNewlines()
			rhs, ok := p.parseExpr(precIn+1, allowDo)
			if !ok {
				return nil, false
			}
			inNode := syntax.NewCall("in", p.tokenMeta(inTok), left, rhs)
			left = syntax.NewCall("not", p.tokenMeta(opTok), inNode)
			continue
		}

		p.skipNewlines()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		rhs, ok := p.parseExpr(nextMin, allowDo)
		if !ok {
			return nil, false
		}
		left = syntax.NewCall(syntax.Atom(opName(opTok)), p.tokenMeta(opTok), left, rhs)
	}
	return left, true
}

func (p *Parser) parseUnary(allowDo bool) (syntax.Term, bool) {
	tok := p.lx.Peek()
	if isUnaryStart(tok.Kind) {
		op := p.advance()
		operand, ok := p.parseUnary(allowDo)
		if !ok {
			return nil, false
		}
		return syntax.NewCall(syntax.Atom(opName(op)), p.tokenMeta(op), operand), true
	}
	return p.parsePostfix(allowDo)
}

// parsePostfix parses a primary expression, its dot chain, and finally a
// do/end block when the position allows one.
func (p *Parser) parsePostfix(allowDo bool) (syntax.Term, bool) {
	t, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for p.at(token.Dot) {
		p.advance()
		t, ok = p.parseDotSuffix(t)
		if !ok {
			return nil, false
		}
	}
	if allowDo && p.at(token.KwDo) {
		return p.attachBlock(t)
	}
	return t, true
}

// parseDotSuffix parses what follows a consumed `.`: an alias segment
// extending an alias, or a function name forming a remote call.
func (p *Parser) parseDotSuffix(target syntax.Term) (syntax.Term, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.UpIdent:
		p.advance()
		if n, ok := target.(*syntax.Node); ok && n.IsCallNamed(syntax.TagAliases) {
			args := append(slices.Clone(n.Args), syntax.Term(syntax.Atom(tok.Text)))
			return &syntax.Node{Tag: syntax.TagAliases, Meta: n.Meta, Args: args}, true
		}
		p.errAt(diag.SynUnexpectedToken, tok.Span, "alias segment %q must follow an alias", tok.Text)
		return nil, false
	case token.Ident:
		p.advance()
		name := syntax.Atom(tok.Text)
		meta := p.tokenMeta(tok)
		if p.at(token.LParen) {
			args, ok := p.parseParenArgs()
			if !ok {
				return nil, false
			}
			return syntax.NewRemoteCall(target, name, meta, args...), true
		}
		if isNoParenArgStart(p.lx.Peek()) {
			args, ok := p.parseNoParenArgs()
			if !ok {
				return nil, false
			}
			return syntax.NewRemoteCall(target, name, meta, args...), true
		}
		return syntax.NewRemoteCall(target, name, meta), true
	default:
		p.errAt(diag.SynExpectIdentifier, tok.Span, "expected identifier after '.'")
		return nil, false
	}
}

func (p *Parser) parsePrimary() (syntax.Term, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := parseIntText(tok.Text)
		if err != nil {
			p.errAt(diag.LexBadNumber, tok.Span, "integer literal out of range")
			return nil, false
		}
		return syntax.Int(v), true

	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			p.errAt(diag.LexBadNumber, tok.Span, "float literal out of range")
			return nil, false
		}
		return syntax.Float(v), true

	case token.StringLit:
		p.advance()
		return syntax.Str(tok.Text), true

	case token.CharListLit:
		p.advance()
		var elems syntax.List
		for _, r := range tok.Text {
			elems = append(elems, syntax.Int(r))
		}
		if elems == nil {
			elems = syntax.List{}
		}
		return elems, true

	case token.AtomLit:
		p.advance()
		return syntax.Atom(tok.Text), true

	case token.KwTrue:
		p.advance()
		return syntax.AtomTrue, true
	case token.KwFalse:
		p.advance()
		return syntax.AtomFalse, true
	case token.KwNil:
		p.advance()
		return syntax.AtomNil, true

	case token.Ident:
		return p.parseIdentExpr()

	case token.UpIdent:
		p.advance()
		return syntax.NewAlias(p.tokenMeta(tok), syntax.Atom(tok.Text)), true

	case token.LParen:
		return p.parseParenGroup()

	case token.LBracket:
		return p.parseList()

	case token.LBrace:
		return p.parseTuple()

	case token.KwFn:
		return p.parseFn()

	case token.At:
		return p.parseAttribute()

	case token.EOF:
		p.errAt(diag.SynTokenMissing, tok.Span, "expression expected before end of input")
		p.incomplete = true
		return nil, false

	case token.Invalid:
		// The lexer already reported it.
		p.advance()
		return nil, false

	default:
		p.errAt(diag.SynExpectExpression, tok.Span, "expected expression, found %s", describeToken(tok))
		return nil, false
	}
}

// parseIdentExpr parses an identifier occurrence: a paren call, a call
// without parentheses, or a plain variable reference.
func (p *Parser) parseIdentExpr() (syntax.Term, bool) {
	tok := p.advance()
	name := syntax.Atom(tok.Text)
	meta := p.tokenMeta(tok)

	if p.at(token.LParen) {
		args, ok := p.parseParenArgs()
		if !ok {
			return nil, false
		}
		return syntax.NewCall(name, meta, args...), true
	}
	if isNoParenArgStart(p.lx.Peek()) {
		args, ok := p.parseNoParenArgs()
		if !ok {
			return nil, false
		}
		return syntax.NewCall(name, meta, args...), true
	}
	return syntax.NewVar(name, meta), true
}

// parseParenGroup parses a parenthesized statement sequence: one
// expression stays itself, several become a __block__ node.
func (p *Parser) parseParenGroup() (syntax.Term, bool) {
	open := p.advance()
	stmts := p.parseStmtSeq(token.RParen)
	if !p.expectClose(token.RParen, `")"`, open) {
		return nil, false
	}
	if len(stmts) == 0 {
		p.errAt(diag.SynExpectExpression, open.Span, "expected expression between parentheses")
		return nil, false
	}
	return p.blockOf(stmts, p.tokenMeta(open)), true
}

func (p *Parser) parseList() (syntax.Term, bool) {
	open := p.advance()
	p.skipNewlines()
	elems := syntax.List{}

	for !p.at(token.RBracket) {
		if p.at(token.KeywordKey) {
			pairs, ok := p.parseKeywordPairs(true)
			if !ok {
				return nil, false
			}
			elems = append(elems, pairs...)
			p.skipNewlines()
			break
		}
		e, ok := p.parseExpr(0, true)
		if !ok {
			return nil, false
		}
		elems = append(elems, e)
		p.skipNewlines()

		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		if p.at(token.Pipe) {
			pipe := p.advance()
			p.skipNewlines()
			tail, ok := p.parseExpr(0, true)
			if !ok {
				return nil, false
			}
			last := elems[len(elems)-1]
			elems[len(elems)-1] = syntax.NewCall("|", p.tokenMeta(pipe), last, tail)
			p.skipNewlines()
		}
		break
	}
	if !p.expectClose(token.RBracket, `"]"`, open) {
		return nil, false
	}
	return elems, true
}

func (p *Parser) parseTuple() (syntax.Term, bool) {
	open := p.advance()
	meta := p.tokenMeta(open)
	p.skipNewlines()
	var elems []syntax.Term

	for !p.at(token.RBrace) {
		if p.at(token.KeywordKey) {
			pairs, ok := p.parseKeywordPairs(true)
			if !ok {
				return nil, false
			}
			elems = append(elems, syntax.List(pairs))
			p.skipNewlines()
			break
		}
		e, ok := p.parseExpr(0, true)
		if !ok {
			return nil, false
		}
		elems = append(elems, e)
		p.skipNewlines()

		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.expectClose(token.RBrace, `"}"`, open) {
		return nil, false
	}
	return syntax.NewCall(syntax.TagTuple, meta, elems...), true
}

// parseAttribute parses @name and @name value. The inner node is
// variable-shaped for a read and call-shaped for a write, which is how
// the lowering stage tells them apart.
func (p *Parser) parseAttribute() (syntax.Term, bool) {
	atTok := p.advance()
	if !p.at(token.Ident) {
		p.errAt(diag.SynExpectIdentifier, p.lx.Peek().Span, "expected attribute name after '@'")
		return nil, false
	}
	nameTok := p.advance()
	name := syntax.Atom(nameTok.Text)
	meta := p.tokenMeta(nameTok)

	var inner *syntax.Node
	switch {
	case p.at(token.LParen):
		args, ok := p.parseParenArgs()
		if !ok {
			return nil, false
		}
		inner = syntax.NewCall(name, meta, args...)
	case isNoParenArgStart(p.lx.Peek()):
		args, ok := p.parseNoParenArgs()
		if !ok {
			return nil, false
		}
		inner = syntax.NewCall(name, meta, args...)
	default:
		inner = syntax.NewVar(name, meta)
	}
	return syntax.NewCall("@", p.tokenMeta(atTok), inner), true
}

// parseIntText converts a raw integer literal, handling base prefixes and
// digit separators. Base 10 is explicit: ParseInt's auto-detection would
// read a leading zero as octal.
func parseIntText(text string) (int64, error) {
	s := strings.ReplaceAll(text, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0b"):
		base, s = 2, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, s = 8, s[2:]
	}
	return strconv.ParseInt(s, base, 64)
}
