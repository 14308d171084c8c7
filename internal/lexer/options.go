package lexer

import (
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics. May be nil; the lexer keeps
	// going after errors either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
