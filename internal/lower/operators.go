package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// operator lowers a binary operator application to an Op node.
func (t *Translator) operator(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(n.Args) != 2 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "operator %s expects two operands", n.Tag)
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "operator %s is not valid in a pattern", n.Tag)
	}
	left, s1, err := t.expr(n.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}
	right, s2, err := t.expr(n.Args[1], s1, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewOp(line, string(n.Tag), left, right), s2, nil
}

// unarySign lowers +x and -x. Signed numeric literals fold into plain
// literals at translation time; anything else becomes a unary Op node.
func (t *Translator) unarySign(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	neg := n.Tag == "-"
	switch v := n.Args[0].(type) {
	case syntax.Int:
		x := int64(v)
		if neg {
			x = -x
		}
		return core.NewInt(line, x), s, nil
	case syntax.Float:
		x := float64(v)
		if neg {
			x = -x
		}
		return core.NewFloat(line, x), s, nil
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "only literal numbers can be signed in a pattern")
	}
	arg, s2, err := t.expr(n.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewOp(line, string(n.Tag), arg), s2, nil
}

// notForm lowers logical negation. `a not in b` parses as not over a
// membership test and keeps the membership expansion underneath.
func (t *Translator) notForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(n.Args) != 1 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "operator not expects one operand")
	}
	if in, ok := n.Args[0].(*syntax.Node); ok && in.IsCallNamed("in") && len(in.Args) == 2 {
		return t.membershipNode(in, s, line, true)
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "operator not is not valid in a pattern")
	}
	arg, s2, err := t.expr(n.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}
	return core.NewOp(line, "not", arg), s2, nil
}

// bangForm lowers ! and !!. A directly nested pair collapses: the inner
// negation cancels and the pair becomes pure boolean coercion.
func (t *Translator) bangForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if len(n.Args) != 1 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "operator ! expects one operand")
	}
	if inner, ok := n.Args[0].(*syntax.Node); ok && inner.IsCallNamed("!") && len(inner.Args) == 1 {
		return t.coerceBoolean(inner.Args[0], s, line, false)
	}
	return t.coerceBoolean(n.Args[0], s, line, true)
}

// coerceBoolean lowers a truthiness test over an arbitrary value, with
// invert selecting negation. In guard position the test expands inline
// into strict comparisons against false and nil; in normal position it
// becomes a two-clause case over the value, which the case translator
// collapses back to boolean patterns when the subject is statically
// boolean.
func (t *Translator) coerceBoolean(term syntax.Term, s scope.Scope, line uint32, invert bool) (*core.Node, scope.Scope, error) {
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "operator ! is not valid in a pattern")
	}
	if s.InGuard() {
		v, s2, err := t.expr(term, s, line)
		if err != nil {
			return nil, s, err
		}
		if invert {
			return core.NewOp(line, "or",
				core.NewOp(line, "===", v, core.NewBool(line, false)),
				core.NewOp(line, "===", v, core.NewNil(line))), s2, nil
		}
		return core.NewOp(line, "and",
			core.NewOp(line, "!==", v, core.NewBool(line, false)),
			core.NewOp(line, "!==", v, core.NewNil(line))), s2, nil
	}

	onFalsy, onTruthy := syntax.Term(syntax.AtomFalse), syntax.Term(syntax.AtomTrue)
	if invert {
		onFalsy, onTruthy = syntax.AtomTrue, syntax.AtomFalse
	}
	meta := syntax.Meta{Line: line}
	falsySet := syntax.List{syntax.AtomFalse, syntax.AtomNil}
	falsyPat := syntax.NewCall("in", meta, syntax.NewVar(syntax.AtomUnderscore, meta), falsySet)
	clauses := syntax.List{
		syntax.NewCall(syntax.TagClause, meta, syntax.List{falsyPat}, onFalsy),
		syntax.NewCall(syntax.TagClause, meta, syntax.List{syntax.NewVar(syntax.AtomUnderscore, meta)}, onTruthy),
	}
	sections := syntax.List{syntax.Pair{Key: "do", Value: clauses}}
	return t.caseForm(syntax.NewCall("case", meta, term, sections), s, line)
}
