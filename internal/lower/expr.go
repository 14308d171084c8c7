package lower

import (
	"strings"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// expr is the generic translator. line is the position of the enclosing
// form; it advances whenever translation descends into a node that
// carries its own position, so bare literals inherit the line of the
// form that contains them.
func (t *Translator) expr(term syntax.Term, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	switch v := term.(type) {
	case syntax.Atom:
		return core.NewAtom(line, string(v)), s, nil
	case syntax.Int:
		return core.NewInt(line, int64(v)), s, nil
	case syntax.Float:
		return core.NewFloat(line, float64(v)), s, nil
	case syntax.Str:
		return core.NewStr(line, string(v)), s, nil
	case syntax.List:
		return t.list(v, s, line)
	case syntax.Pair:
		return t.pair(v, s, line)
	case *syntax.Node:
		return t.node(v, s, line)
	default:
		return nil, s, t.fail(diag.LowInvalidArgs, line, "cannot lower term of type %T", term)
	}
}

func (t *Translator) node(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if n.Meta.Line != 0 {
		line = n.Meta.Line
	}
	if n.Args == nil {
		return t.variable(n, s, line)
	}
	switch n.Tag {
	case syntax.TagBlock:
		return t.block(n, s, line)
	case syntax.TagAliases:
		return t.aliasRef(n, s, line)
	case syntax.TagDot:
		return t.remoteCall(n, s, line)
	case syntax.TagTuple:
		return t.tuple(n, s, line)
	case "=":
		return t.match(n, s, line)
	case "|":
		return nil, s, t.fail(diag.LowMisplacedCons, line, "| is only valid as the last element of a list")
	case syntax.TagClause:
		return nil, s, t.fail(diag.LowInvalidClauseShape, line, "unexpected -> clause")
	case syntax.TagWhen:
		return nil, s, t.fail(diag.LowInvalidClauseShape, line, "unexpected when outside a definition or clause head")
	}
	node, s2, handled, err := t.specialForm(n, s, line)
	if handled {
		if err != nil {
			return nil, s, err
		}
		return node, s2, nil
	}
	return t.localCall(n, s, line)
}

// variable lowers an identifier occurrence. In pattern position an
// unbound name binds; in value position it degrades to a zero-arg local
// call, which is how no-parentheses nullary calls reach the backend.
func (t *Translator) variable(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if n.IsWildcard() {
		if !s.InMatch() {
			return nil, s, t.fail(diag.LowUnboundWildcard, line, "unbound variable _")
		}
		return core.NewVar(line, "_"), s, nil
	}
	name := string(n.Tag)
	if s.Bound(name) {
		return core.NewVar(line, name), s, nil
	}
	if s.InMatch() {
		return core.NewVar(line, name), s.Bind(name), nil
	}
	return t.localCall(n, s, line)
}

func (t *Translator) localCall(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	name := string(n.Tag)
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "cannot invoke %s/%d inside a pattern", name, len(n.Args))
	}
	if s.InGuard() && !guardBuiltins[name] {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: cannot call %s/%d", name, len(n.Args))
	}
	args, s2, err := t.args(n.Args, s, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewLocalCall(line, name, args...), s2, nil
}

func (t *Translator) remoteCall(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(n.Args) != 3 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "malformed remote call")
	}
	fun, okFun := n.Args[1].(syntax.Atom)
	argList, okArgs := n.Args[2].(syntax.List)
	if !okFun || !okArgs {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "malformed remote call")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "cannot invoke a remote call inside a pattern")
	}
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: remote calls are not allowed")
	}
	target, s1, err := t.expr(n.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}
	args, s2, err := t.args(argList, s1, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewRemoteCall(line, target, string(fun), args...), s2, nil
}

// aliasRef lowers a module reference to its fully qualified atom.
func (t *Translator) aliasRef(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	name, err := t.resolveAlias(n, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewAtom(line, name), s, nil
}

// resolveAlias flattens an alias reference into a fully qualified module
// name. A registered alias expands the head segment; a leading Elixir
// segment marks the reference as explicitly root-qualified and is
// stripped.
func (t *Translator) resolveAlias(n *syntax.Node, line uint32) (string, error) {
	if len(n.Args) == 0 {
		return "", t.fail(diag.LowInvalidModuleName, line, "invalid module reference")
	}
	segs := make([]string, 0, len(n.Args))
	for _, a := range n.Args {
		atom, ok := a.(syntax.Atom)
		if !ok {
			return "", t.fail(diag.LowInvalidModuleName, line, "invalid module reference")
		}
		segs = append(segs, string(atom))
	}
	if segs[0] == "Elixir" && len(segs) > 1 {
		return strings.Join(segs[1:], "."), nil
	}
	if t.env != nil {
		if full, ok := t.env.ResolveAlias(segs[0]); ok {
			segs[0] = full
		}
	}
	return strings.Join(segs, "."), nil
}

func (t *Translator) list(l syntax.List, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	items := l
	var tailTerm syntax.Term
	if n := len(l); n > 0 {
		if cons, ok := l[n-1].(*syntax.Node); ok && cons.IsCallNamed("|") && len(cons.Args) == 2 {
			items = make(syntax.List, n)
			copy(items, l)
			items[n-1] = cons.Args[0]
			tailTerm = cons.Args[1]
		}
	}
	elems, s2, err := t.args(items, s, line)
	if err != nil {
		return nil, s, err
	}
	var tail *core.Node
	if tailTerm != nil {
		tail, s2, err = t.expr(tailTerm, s2, line)
		if err != nil {
			return nil, s, err
		}
	}
	return &core.Node{Kind: core.KindList, Line: line, Data: core.ListData{Elems: elems, Tail: tail}}, s2, nil
}

// pair lowers a keyword entry to its two-element tuple form.
func (t *Translator) pair(p syntax.Pair, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	v, s2, err := t.expr(p.Value, s, line)
	if err != nil {
		return nil, s, err
	}
	elems := []*core.Node{core.NewAtom(line, string(p.Key)), v}
	return &core.Node{Kind: core.KindTuple, Line: line, Data: core.TupleData{Elems: elems}}, s2, nil
}

func (t *Translator) tuple(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	elems, s2, err := t.args(n.Args, s, line)
	if err != nil {
		return nil, s, err
	}
	return &core.Node{Kind: core.KindTuple, Line: line, Data: core.TupleData{Elems: elems}}, s2, nil
}

func (t *Translator) block(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: blocks are not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "a block is not a valid pattern")
	}
	stmts, s2, err := t.args(n.Args, s, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewBlock(line, stmts...), s2, nil
}

// match lowers pattern = value. The value side lowers first in the
// current context, then the pattern side in match context, so bindings
// introduced by the pattern are not visible while lowering the value.
func (t *Translator) match(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(n.Args) != 2 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "malformed match")
	}
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: = is not allowed")
	}
	value, sv, err := t.expr(n.Args[1], s, line)
	if err != nil {
		return nil, s, err
	}
	pattern, sp, err := t.expr(n.Args[0], sv.WithContext(scope.ContextMatch), line)
	if err != nil {
		return nil, s, err
	}
	return core.NewMatch(line, pattern, value), s.Merge(sp), nil
}
