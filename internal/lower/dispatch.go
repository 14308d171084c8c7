package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// applyForm lowers apply(module, fun, args). With a literal argument
// list and a statically known function name the call collapses into a
// direct remote call; anything dynamic goes through the runtime
// dispatcher.
func (t *Translator) applyForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: cannot call apply/3")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "cannot invoke apply/3 inside a pattern")
	}
	mNode, s1, err := t.expr(n.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}
	fNode, s2, err := t.expr(n.Args[1], s1, line)
	if err != nil {
		return nil, s, err
	}

	if list, ok := n.Args[2].(syntax.List); ok && !hasConsTail(list) {
		if fname, isAtom := core.AtomValue(fNode); isAtom {
			args, s3, err := t.args(list, s2, line)
			if err != nil {
				return nil, s, err
			}
			return core.NewRemoteCall(line, mNode, fname, args...), s3, nil
		}
	}
	aNode, s3, err := t.expr(n.Args[2], s2, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewRemoteCallAtom(line, "elixir_runtime", "apply", mNode, fNode, aNode), s3, nil
}

func hasConsTail(l syntax.List) bool {
	if len(l) == 0 {
		return false
	}
	cons, ok := l[len(l)-1].(*syntax.Node)
	return ok && cons.IsCallNamed("|") && len(cons.Args) == 2
}

// functionForm lowers the function reference builders. function(f, a)
// resolves against the local definitions registered so far and fails on
// macros and unknown functions; function(m, f, a) builds a remote
// reference without a static check, falling back to runtime retrieval
// when any part is dynamic.
func (t *Translator) functionForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: function references are not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "a function reference is not a valid pattern")
	}

	if len(n.Args) == 2 {
		name, okN := literalFunName(n.Args[0], s)
		arity, okA := n.Args[1].(syntax.Int)
		if !okN || !okA {
			return nil, s, t.fail(diag.LowDynamicLocalFun, line,
				"cannot dynamically retrieve local function, use function(module, fun, arity) instead")
		}
		def, found := t.env.Lookup(name, int(arity))
		if !found {
			return nil, s, t.fail(diag.LowUndefinedFunction, line, "undefined function %s/%d", name, int(arity))
		}
		if def.IsMacro() {
			return nil, s, t.fail(diag.LowMacroToFunction, line, "cannot convert a macro to a function: %s/%d", name, int(arity))
		}
		data := core.FunRefData{Name: name, Arity: int(arity)}
		return &core.Node{Kind: core.KindFunRef, Line: line, Data: data}, s, nil
	}

	module, okM := t.literalModule(n.Args[0], line)
	name, okN := literalFunName(n.Args[1], s)
	arity, okA := n.Args[2].(syntax.Int)
	if okM && okN && okA {
		data := core.FunRefData{Module: module, Name: name, Arity: int(arity)}
		return &core.Node{Kind: core.KindFunRef, Line: line, Data: data}, s, nil
	}
	nodes, s2, err := t.args(n.Args, s, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewRemoteCallAtom(line, "elixir_runtime", "function", nodes...), s2, nil
}

// literalFunName accepts an atom or a bare identifier as a statically
// known function name. A bound variable is not a name: it carries a
// runtime value.
func literalFunName(term syntax.Term, s scope.Scope) (string, bool) {
	switch v := term.(type) {
	case syntax.Atom:
		return string(v), true
	case *syntax.Node:
		if v.IsVar() && !v.IsWildcard() && !s.Bound(string(v.Tag)) {
			return string(v.Tag), true
		}
	}
	return "", false
}

func (t *Translator) literalModule(term syntax.Term, line uint32) (string, bool) {
	switch v := term.(type) {
	case syntax.Atom:
		return string(v), true
	case *syntax.Node:
		if v.IsCallNamed(syntax.TagAliases) {
			full, err := t.resolveAlias(v, line)
			if err != nil {
				return "", false
			}
			return full, true
		}
	}
	return "", false
}
