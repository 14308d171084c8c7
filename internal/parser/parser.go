// Package parser turns a token stream into the quoted term convention the
// lowering stage consumes: literals stay literals, every other construct
// becomes a tagged Node. There is no separate AST; the parser's output is
// the homoiconic surface tree itself.
package parser

import (
	"fmt"

	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/lexer"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/syntax"
	"github.com/l4u/elixir/internal/token"
)

type Options struct {
	// MaxErrors aborts parsing once reached; zero means no limit.
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result is the outcome of parsing one compilation unit.
type Result struct {
	// Term is the program term: a single expression, or a __block__ node
	// when the unit holds several. Present even after errors, holding
	// whatever could be recovered.
	Term syntax.Term
	// Incomplete is set when the input ended inside an open construct
	// (missing end, ), ] or }). Interactive callers use it to keep
	// reading instead of failing.
	Incomplete bool
	// Bag is the diagnostic bag when the reporter wraps one.
	Bag *diag.Bag
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx         *lexer.Lexer
	file       *source.File
	opts       Options
	errors     uint
	incomplete bool
	lastSpan   source.Span
}

// Parse runs the parser over one source file.
func Parse(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{
		lx:   lx,
		file: file,
		opts: opts,
	}
	term := p.parseProgram()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Term: term, Incomplete: p.incomplete, Bag: bag}
}

func (p *Parser) parseProgram() syntax.Term {
	first := p.lx.Peek()
	stmts := p.parseStmtSeq(token.EOF)
	if !p.at(token.EOF) && !p.enough() {
		p.errUnexpected(p.lx.Peek())
	}
	return p.blockOf(stmts, p.tokenMeta(first))
}

// parseStmtSeq parses terminator-separated expressions until the stop
// kind, a section boundary or EOF.
func (p *Parser) parseStmtSeq(stop token.Kind) []syntax.Term {
	var stmts []syntax.Term
	for {
		p.skipTerminators()
		tok := p.lx.Peek()
		if tok.Kind == stop || tok.Kind == token.EOF || p.atSectionEnd() || p.enough() {
			return stmts
		}
		before := tok
		e, ok := p.parseExpr(0, true)
		if !ok {
			p.resync()
			// Resync stops before closers it does not own. If no token
			// was consumed, skip one so the loop always moves forward.
			cur := p.lx.Peek()
			if cur.Kind != token.EOF && !cur.IsTerminator() && cur.Kind != stop && !p.atSectionEnd() && cur.Span == before.Span {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, e)
		next := p.lx.Peek()
		if next.IsTerminator() || next.Kind == stop || next.Kind == token.EOF || p.atSectionEnd() {
			continue
		}
		p.errUnexpected(next)
		p.resync()
	}
}

// blockOf wraps a statement list: none or many become a __block__ node, a
// single statement stays itself.
func (p *Parser) blockOf(stmts []syntax.Term, meta syntax.Meta) syntax.Term {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return syntax.NewCall(syntax.TagBlock, meta, stmts...)
}

// ===== Token helpers =====

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atSectionEnd() bool {
	k := p.lx.Peek().Kind
	return k == token.KwEnd || token.BlockKeyword(k)
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

func (p *Parser) skipTerminators() {
	for p.lx.Peek().IsTerminator() {
		p.advance()
	}
}

func (p *Parser) tokenMeta(tok token.Token) syntax.Meta {
	lc := p.file.LineCol(tok.Span.Start)
	return syntax.Meta{Line: lc.Line, Column: lc.Col}
}

// ===== Diagnostics =====

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) errAt(code diag.Code, span source.Span, format string, args ...any) {
	p.errors++
	if p.opts.Reporter == nil {
		return
	}
	diag.ReportError(p.opts.Reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func (p *Parser) errUnexpected(tok token.Token) {
	p.errAt(diag.SynUnexpectedToken, tok.Span, "unexpected %s", describeToken(tok))
}

// expectClose consumes the closing token of a delimited construct. At EOF
// it reports the missing terminator instead, which marks the result
// incomplete so interactive callers can keep reading.
func (p *Parser) expectClose(kind token.Kind, what string, open token.Token) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	tok := p.lx.Peek()
	if tok.Kind == token.EOF {
		openLC := p.file.LineCol(open.Span.Start)
		p.errAt(diag.SynTokenMissing, tok.Span,
			"missing terminator: %s (for %q starting at line %d)", what, open.Text, openLC.Line)
		p.incomplete = true
		return false
	}
	p.errAt(diag.SynUnexpectedToken, tok.Span, "expected %s, found %s", what, describeToken(tok))
	return false
}

// resync skips ahead to the next statement boundary at the current
// nesting depth so one malformed expression does not drown the rest of
// the unit in follow-up errors.
func (p *Parser) resync() {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.Newline, token.Semicolon:
			if depth == 0 {
				return
			}
		case token.LParen, token.LBracket, token.LBrace, token.KwDo, token.KwFn:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.KwEnd:
			if depth == 0 {
				return
			}
			depth--
		case token.KwRescue, token.KwCatch, token.KwAfter, token.KwElse:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Newline:
		return "line break"
	case token.Invalid:
		return fmt.Sprintf("invalid token %q", tok.Text)
	}
	if tok.Text != "" {
		return fmt.Sprintf("%q", tok.Text)
	}
	return "token"
}
