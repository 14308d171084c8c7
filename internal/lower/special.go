package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// specialForm recognizes call shapes with dedicated translation rules.
// handled is false when the tag names no special form; the caller then
// lowers a generic local call. Shapes that look special but carry the
// wrong argument count also fall through, so user functions named apply
// or function with other arities keep working.
func (t *Translator) specialForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, bool, error) {
	h := func(node *core.Node, out scope.Scope, err error) (*core.Node, scope.Scope, bool, error) {
		return node, out, true, err
	}
	switch n.Tag {
	case "+", "-":
		if len(n.Args) == 1 {
			return h(t.unarySign(n, s, line))
		}
		return h(t.operator(n, s, line))
	case "*", "/", "++", "--", "<>", "==", "!=", "===", "!==",
		"<", "<=", ">", ">=", "and", "or", "xor", "&&", "||", "..":
		return h(t.operator(n, s, line))
	case "not":
		return h(t.notForm(n, s, line))
	case "!":
		return h(t.bangForm(n, s, line))
	case "in":
		if len(n.Args) == 2 {
			return h(t.membershipNode(n, s, line, false))
		}
	case "case":
		return h(t.caseForm(n, s, line))
	case "try":
		return h(t.tryForm(n, s, line))
	case "receive":
		return h(t.receiveForm(n, s, line))
	case "fn":
		return h(t.fnForm(n, s, line))
	case "defmodule":
		return h(t.defmodule(n, s, line))
	case "def", "defp", "defmacro", "defmacrop":
		return h(t.define(n, s, line))
	case "alias":
		return h(t.aliasForm(n, s, line))
	case "@":
		return h(t.attribute(n, s, line))
	case "apply":
		if len(n.Args) == 3 {
			return h(t.applyForm(n, s, line))
		}
	case "function":
		if len(n.Args) == 2 || len(n.Args) == 3 {
			return h(t.functionForm(n, s, line))
		}
	}
	return nil, s, false, nil
}
