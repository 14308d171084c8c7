// Package lower translates quoted surface terms into the lowered core
// tree. This is the stage where special forms stop being ordinary call
// shapes: operators normalize, membership tests expand into comparison
// chains, control forms grow clause structure, and definition forms
// register themselves against the per-unit module environment.
//
// Translation is scope-directed. The same surface shape lowers
// differently depending on the scope.Context it meets: a variable
// occurrence binds in a pattern but becomes a zero-arg call in normal
// position, and a membership test inlines, caches, or accumulates extra
// guards depending on where it sits. The first error unwinds the whole
// unit as a *diag.Failure; warnings flow through Options.Reporter and
// never stop translation.
package lower

import (
	"fmt"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/modenv"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/syntax"
)

// Options adjusts translation behavior per unit.
type Options struct {
	// Internal elides documentation attributes (doc, moduledoc,
	// typedoc) instead of storing and lowering their payloads. Used
	// when compiling the bootstrap library itself.
	Internal bool

	// Reporter receives warnings and deprecations. May be nil.
	Reporter diag.Reporter
}

// Translator lowers the quoted terms of one compilation unit. It is not
// safe for concurrent use; units run on separate translators.
type Translator struct {
	file *source.File
	env  *modenv.Env
	opts Options
}

// New returns a translator for one unit. The environment collects
// attribute values, definition registrations, and scheduled nested
// modules as translation proceeds; a nil env gets replaced with an
// empty one.
func New(file *source.File, env *modenv.Env, opts Options) *Translator {
	if env == nil {
		env = modenv.New("")
	}
	return &Translator{file: file, env: env, opts: opts}
}

// Env returns the module environment the translator writes into.
func (t *Translator) Env() *modenv.Env { return t.env }

// Expr lowers a single term under the given scope and returns the
// lowered node together with the scope accumulated by the translation.
func (t *Translator) Expr(term syntax.Term, s scope.Scope) (*core.Node, scope.Scope, error) {
	return t.expr(term, s, 1)
}

// Unit lowers a whole parsed unit into a flat statement list. A
// top-level block is unwrapped; anything else becomes a one-statement
// list.
func (t *Translator) Unit(term syntax.Term, s scope.Scope) ([]*core.Node, scope.Scope, error) {
	n, s2, err := t.Expr(term, s)
	if err != nil {
		return nil, s, err
	}
	return core.Pack(n), s2, nil
}

// Args lowers a term list left to right, threading the scope so earlier
// arguments bind variables visible to later ones.
func (t *Translator) Args(terms []syntax.Term, s scope.Scope) ([]*core.Node, scope.Scope, error) {
	return t.args(terms, s, 1)
}

func (t *Translator) args(terms []syntax.Term, s scope.Scope, line uint32) ([]*core.Node, scope.Scope, error) {
	if len(terms) == 0 {
		return nil, s, nil
	}
	out := make([]*core.Node, 0, len(terms))
	for _, term := range terms {
		n, s2, err := t.expr(term, s, line)
		if err != nil {
			return nil, s, err
		}
		out = append(out, n)
		s = s2
	}
	return out, s, nil
}

// span widens a line number into the source span of that whole line.
// Lowered terms only carry line positions, so lowering diagnostics point
// at lines.
func (t *Translator) span(line uint32) source.Span {
	if t.file == nil {
		return source.Span{}
	}
	return t.file.LineSpan(line)
}

func (t *Translator) fail(code diag.Code, line uint32, format string, args ...any) error {
	return diag.Fail(code, t.span(line), format, args...)
}

func (t *Translator) warn(code diag.Code, line uint32, format string, args ...any) {
	diag.ReportWarning(t.opts.Reporter, code, t.span(line), fmt.Sprintf(format, args...)).Emit()
}

// guardBuiltins is the set of local functions callable inside guards.
// Everything else local is rejected there; operators are always allowed.
var guardBuiltins = map[string]bool{
	"is_atom":     true,
	"is_boolean":  true,
	"is_integer":  true,
	"is_float":    true,
	"is_number":   true,
	"is_list":     true,
	"is_tuple":    true,
	"is_binary":   true,
	"is_function": true,
	"is_nil":      true,
	"abs":         true,
	"length":      true,
	"hd":          true,
	"tl":          true,
	"elem":        true,
	"div":         true,
	"rem":         true,
	"node":        true,
	"round":       true,
	"trunc":       true,
	"tuple_size":  true,
	"byte_size":   true,
}
