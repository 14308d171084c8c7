package lower

import (
	"unicode"
	"unicode/utf8"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// docAttrs are the documentation attributes elided under
// Options.Internal.
var docAttrs = map[string]bool{"doc": true, "moduledoc": true, "typedoc": true}

// attribute lowers @name reads and @name value writes. In a module body
// both sides lower to calls against the runtime attribute store, with
// the value also recorded in the unit environment. Inside a definition
// a read embeds the value frozen at translation time; a write is an
// error.
func (t *Translator) attribute(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(n.Args) != 1 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "malformed attribute form")
	}
	inner, ok := n.Args[0].(*syntax.Node)
	if !ok {
		return nil, s, t.fail(diag.LowInvalidAttrName, line, "invalid attribute name")
	}
	name := string(inner.Tag)
	if r, _ := utf8.DecodeRuneInString(name); name == "" || unicode.IsUpper(r) {
		return nil, s, t.fail(diag.LowInvalidAttrName, line, "invalid attribute name @%s", name)
	}

	if inner.IsVar() {
		return t.attributeRead(name, s, line)
	}
	return t.attributeWrite(name, inner, s, line)
}

func (t *Translator) attributeRead(name string, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InsideFunction() {
		// Attributes freeze at use sites inside definitions; later
		// writes do not affect code already translated.
		val, ok := t.env.Get(name)
		if !ok {
			t.warn(diag.LowUndefinedAttribute, line, "undefined module attribute @%s, it must be set before use", name)
			return core.NewNil(line), s, nil
		}
		frozen, okF := t.freeze(line, val)
		if !okF {
			return nil, s, t.fail(diag.LowInvalidAttrValue, line, "invalid value for attribute @%s", name)
		}
		return frozen, s, nil
	}
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: attributes cannot be read here")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "an attribute is not a valid pattern here")
	}
	if !s.InsideModule() {
		return nil, s, t.fail(diag.LowAttrOutsideModule, line, "cannot access attribute @%s outside a module", name)
	}
	return core.NewRemoteCallAtom(line, "elixir_module", "get_attribute",
		core.NewAtom(line, s.Module), core.NewAtom(line, name)), s, nil
}

func (t *Translator) attributeWrite(name string, inner *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(inner.Args) != 1 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "setting attribute @%s expects a single value", name)
	}
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: attributes cannot be set here")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "an attribute write is not a valid pattern")
	}
	if s.InsideFunction() {
		return nil, s, t.fail(diag.LowAttrSetInFunction, line, "cannot set attribute @%s inside a function", name)
	}
	if !s.InsideModule() {
		return nil, s, t.fail(diag.LowAttrOutsideModule, line, "cannot access attribute @%s outside a module", name)
	}

	value := inner.Args[0]
	if docAttrs[name] && t.opts.Internal {
		// Bootstrap compiles drop documentation payloads entirely.
		return core.NewNil(line), s, nil
	}
	frozen, okF := t.freeze(line, value)
	if !okF {
		return nil, s, t.fail(diag.LowInvalidAttrValue, line, "invalid value for attribute @%s: expected a compile-time constant", name)
	}
	t.env.Put(name, value)
	return core.NewRemoteCallAtom(line, "elixir_module", "put_attribute",
		core.NewAtom(line, s.Module), core.NewAtom(line, name), frozen), s, nil
}
