package parser

import (
	"slices"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/syntax"
	"github.com/l4u/elixir/internal/token"
)

// parseParenArgs parses `(...)` call arguments. Trailing keyword
// arguments collapse into one keyword list as the final argument.
func (p *Parser) parseParenArgs() ([]syntax.Term, bool) {
	open := p.advance()
	p.skipNewlines()
	var args []syntax.Term

	for !p.at(token.RParen) {
		if p.at(token.KeywordKey) {
			pairs, ok := p.parseKeywordPairs(true)
			if !ok {
				return nil, false
			}
			args = append(args, syntax.List(pairs))
			p.skipNewlines()
			break
		}
		e, ok := p.parseExpr(0, true)
		if !ok {
			return nil, false
		}
		args = append(args, e)
		p.skipNewlines()

		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.expectClose(token.RParen, `")"`, open) {
		return args, false
	}
	return args, true
}

// parseNoParenArgs parses the arguments of a call written without
// parentheses: `case x`, `def add(a, b)`, `apply :m, :f, []`. Arguments
// here never take do blocks of their own, so the block after them binds
// to this call's caller.
func (p *Parser) parseNoParenArgs() ([]syntax.Term, bool) {
	var args []syntax.Term
	for {
		if p.at(token.KeywordKey) {
			pairs, ok := p.parseKeywordPairs(false)
			if !ok {
				return nil, false
			}
			args = append(args, syntax.List(pairs))
			return args, true
		}
		e, ok := p.parseExpr(0, false)
		if !ok {
			return nil, false
		}
		args = append(args, e)

		if p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			continue
		}
		return args, true
	}
}

// parseKeywordPairs parses `key: value` pairs separated by commas. Once
// keys start, every following element must be one.
func (p *Parser) parseKeywordPairs(allowDo bool) ([]syntax.Term, bool) {
	var pairs []syntax.Term
	for {
		key := p.advance() // KeywordKey
		p.skipNewlines()
		val, ok := p.parseExpr(0, allowDo)
		if !ok {
			return nil, false
		}
		pairs = append(pairs, syntax.Pair{Key: syntax.Atom(key.Text), Value: val})

		if !p.at(token.Comma) {
			return pairs, true
		}
		p.advance()
		p.skipNewlines()
		if !p.at(token.KeywordKey) {
			p.errAt(diag.SynBadKeywordList, p.lx.Peek().Span,
				"expected another key after ',' in a keyword list, found %s", describeToken(p.lx.Peek()))
			return nil, false
		}
	}
}

// attachBlock glues a parsed do/end block onto the preceding expression.
// A variable becomes a call whose only argument is the block's keyword
// list; a call gets the list appended to its arguments. That turns
// `try do ... end` into try([do: ...]) and `case x do ... end` into
// case(x, [do: ...]).
func (p *Parser) attachBlock(t syntax.Term) (syntax.Term, bool) {
	doTok := p.lx.Peek()
	n, ok := t.(*syntax.Node)
	if !ok || !blockTarget(n) {
		p.errAt(diag.SynUnexpectedToken, doTok.Span, "unexpected do block")
		return nil, false
	}

	blk, ok := p.parseDoBlock()
	if !ok {
		return nil, false
	}

	if n.Tag == syntax.TagDot && len(n.Args) == 3 {
		inner, _ := n.Args[2].(syntax.List)
		newInner := append(slices.Clone(inner), syntax.Term(blk))
		args := slices.Clone(n.Args)
		args[2] = newInner
		return &syntax.Node{Tag: n.Tag, Meta: n.Meta, Args: args}, true
	}

	args := append(slices.Clone(n.Args), syntax.Term(blk))
	return &syntax.Node{Tag: n.Tag, Meta: n.Meta, Args: args}, true
}

// blockTarget reports whether a do block may attach to the node: plain
// locals and remote calls only, not aliases, literal constructors or
// already-built block nodes.
func blockTarget(n *syntax.Node) bool {
	switch n.Tag {
	case syntax.TagAliases, syntax.TagBlock, syntax.TagTuple, syntax.TagClause, syntax.TagWhen:
		return false
	}
	return true
}
