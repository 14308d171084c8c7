package parser

import (
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/syntax"
	"github.com/l4u/elixir/internal/token"
)

// parseDoBlock parses `do ... end` with its optional rescue, catch,
// after and else sections into the keyword list the quoted convention
// appends to the enclosing call: [do: body, rescue: clauses, ...]. Each
// section holds either a statement body or a list of `->` clauses.
func (p *Parser) parseDoBlock() (syntax.List, bool) {
	doTok := p.advance() // do
	sections := syntax.List{}
	sections = append(sections, syntax.Pair{Key: "do", Value: p.parseSectionBody(p.tokenMeta(doTok))})

	for token.BlockKeyword(p.lx.Peek().Kind) && !p.enough() {
		kw := p.advance()
		sections = append(sections, syntax.Pair{Key: syntax.Atom(kw.Text), Value: p.parseSectionBody(p.tokenMeta(kw))})
	}

	if !p.expectClose(token.KwEnd, `"end"`, doTok) {
		return sections, false
	}
	return sections, true
}

// parseSectionBody parses one section's items. The first `->` switches
// the section into clause mode; afterwards plain expressions extend the
// current clause's body.
func (p *Parser) parseSectionBody(meta syntax.Meta) syntax.Term {
	st := sectionState{p: p, meta: meta}
	st.run()
	if st.inClauses {
		if len(st.stmts) > 0 {
			p.errAt(diag.SynExpectClause, p.lastSpan, "cannot mix plain expressions and '->' clauses in one block")
		}
		return syntax.List(st.clauses)
	}
	return p.blockOf(st.stmts, meta)
}

type sectionState struct {
	p    *Parser
	meta syntax.Meta

	stmts   []syntax.Term
	clauses []syntax.Term

	headOpen  bool
	inClauses bool
	curHead   []syntax.Term
	curMeta   syntax.Meta
	curBody   []syntax.Term
}

// openClause finalizes any clause in progress and starts a new one.
func (s *sectionState) openClause(head []syntax.Term, meta syntax.Meta) {
	s.flush()
	s.headOpen = true
	s.inClauses = true
	s.curHead = head
	s.curMeta = meta
	s.curBody = nil
}

func (s *sectionState) flush() {
	if !s.headOpen {
		return
	}
	clause := syntax.NewCall(syntax.TagClause, s.curMeta,
		syntax.List(s.curHead), s.p.blockOf(s.curBody, s.curMeta))
	s.clauses = append(s.clauses, clause)
	s.headOpen = false
	s.curBody = nil
}

func (s *sectionState) run() {
	p := s.p
	for {
		p.skipTerminators()
		tok := p.lx.Peek()
		if tok.Kind == token.EOF || p.atSectionEnd() || p.enough() {
			break
		}

		// A bare arrow opens a clause with no patterns: `fn -> :ok end`.
		if tok.Kind == token.Arrow {
			arrow := p.advance()
			s.openClause([]syntax.Term{}, p.tokenMeta(arrow))
			continue
		}

		before := tok
		e, ok := p.parseExpr(0, true)
		if !ok {
			p.resync()
			cur := p.lx.Peek()
			if cur.Kind != token.EOF && !cur.IsTerminator() && !p.atSectionEnd() && cur.Span == before.Span {
				p.advance()
			}
			continue
		}

		switch {
		case p.at(token.Arrow):
			arrow := p.advance()
			s.openClause(clauseHead([]syntax.Term{e}), p.tokenMeta(arrow))

		case p.at(token.Comma):
			pats := []syntax.Term{e}
			for p.at(token.Comma) {
				p.advance()
				p.skipNewlines()
				pat, ok := p.parseExpr(0, false)
				if !ok {
					p.resync()
					break
				}
				pats = append(pats, pat)
			}
			if !p.at(token.Arrow) {
				p.errAt(diag.SynExpectClause, p.lx.Peek().Span,
					"expected '->' after clause patterns, found %s", describeToken(p.lx.Peek()))
				p.resync()
				continue
			}
			arrow := p.advance()
			s.openClause(clauseHead(pats), p.tokenMeta(arrow))

		default:
			if s.headOpen {
				s.curBody = append(s.curBody, e)
			} else {
				s.stmts = append(s.stmts, e)
			}
			next := p.lx.Peek()
			if !next.IsTerminator() && next.Kind != token.EOF && !p.atSectionEnd() {
				p.errUnexpected(next)
				p.resync()
			}
		}
	}
	s.flush()
}

// clauseHead normalizes parsed head expressions into the quoted head
// shape. A trailing guard folds the whole head into one `when` node
// whose arguments are every pattern followed by the guard, so
// `a, b when g ->` becomes [{:when, m, [a, b, g]}].
func clauseHead(pats []syntax.Term) []syntax.Term {
	if len(pats) == 0 {
		return pats
	}
	last, ok := pats[len(pats)-1].(*syntax.Node)
	if !ok || !last.IsCallNamed(syntax.TagWhen) || len(last.Args) != 2 {
		return pats
	}
	flat := make([]syntax.Term, 0, len(pats)+1)
	flat = append(flat, pats[:len(pats)-1]...)
	flat = append(flat, last.Args...)
	return []syntax.Term{syntax.NewCall(syntax.TagWhen, last.Meta, flat...)}
}

// parseFn parses an anonymous function. Both spellings are accepted:
// `fn(a, b) -> body end` with the head in parentheses, and the bare
// `fn a, b -> body end` with multiple clauses separated by line breaks.
func (p *Parser) parseFn() (syntax.Term, bool) {
	fnTok := p.advance() // fn
	meta := p.tokenMeta(fnTok)
	st := sectionState{p: p, meta: meta}

	if p.at(token.LParen) {
		head, ok := p.parseFnHead()
		if !ok {
			return nil, false
		}
		if !p.at(token.Arrow) {
			p.errAt(diag.SynExpectClause, p.lx.Peek().Span,
				"expected '->' after fn arguments, found %s", describeToken(p.lx.Peek()))
			return nil, false
		}
		arrow := p.advance()
		st.openClause(head, p.tokenMeta(arrow))
	}

	st.run()
	if !p.expectClose(token.KwEnd, `"end"`, fnTok) {
		return nil, false
	}
	if !st.inClauses {
		p.errAt(diag.SynExpectClause, fnTok.Span, "expected '->' clauses in fn")
		return nil, false
	}
	if len(st.stmts) > 0 {
		p.errAt(diag.SynExpectClause, fnTok.Span, "cannot mix plain expressions and '->' clauses in fn")
	}
	return syntax.NewCall("fn", meta, st.clauses...), true
}

// parseFnHead parses the parenthesized pattern list of the explicit fn
// spelling, with its optional trailing guard.
func (p *Parser) parseFnHead() ([]syntax.Term, bool) {
	open := p.advance() // (
	p.skipNewlines()
	var pats []syntax.Term

	for !p.at(token.RParen) {
		pat, ok := p.parseExpr(0, false)
		if !ok {
			return nil, false
		}
		pats = append(pats, pat)
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.expectClose(token.RParen, `")"`, open) {
		return nil, false
	}

	if p.at(token.KwWhen) {
		when := p.advance()
		p.skipNewlines()
		guard, ok := p.parseExpr(0, false)
		if !ok {
			return nil, false
		}
		args := append(pats, guard)
		return []syntax.Term{syntax.NewCall(syntax.TagWhen, p.tokenMeta(when), args...)}, true
	}
	return clauseHead(pats), true
}
