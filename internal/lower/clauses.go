package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// Clause machinery shared by case, receive, try, fn and definitions.
// Patterns lower in match context with a fresh extra-guard accumulator;
// membership tests there stash comparison chains which get conjoined
// with the written guard. Sibling clauses lower independently from the
// same base bindings, with the synthetic-name counter threaded through
// so generated names stay unique, and their results merge pairwise.

// clauseList validates that term is a non-empty list of -> clauses.
func clauseList(term syntax.Term) ([]*syntax.Node, bool) {
	l, ok := term.(syntax.List)
	if !ok || len(l) == 0 {
		return nil, false
	}
	out := make([]*syntax.Node, 0, len(l))
	for _, item := range l {
		n, ok := item.(*syntax.Node)
		if !ok || !n.IsCallNamed(syntax.TagClause) || len(n.Args) != 2 {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func emptyBlock(term syntax.Term) bool {
	n, ok := term.(*syntax.Node)
	return ok && n.IsCallNamed(syntax.TagBlock) && len(n.Args) == 0
}

// patternArity counts the patterns of a clause head, looking through a
// guard wrapper.
func patternArity(c *syntax.Node) int {
	pats, ok := c.Args[0].(syntax.List)
	if !ok {
		return 0
	}
	if len(pats) == 1 {
		if w, ok := pats[0].(*syntax.Node); ok && w.IsCallNamed(syntax.TagWhen) && len(w.Args) >= 2 {
			return len(w.Args) - 1
		}
	}
	return len(pats)
}

func (t *Translator) matchClauses(clauses []*syntax.Node, s scope.Scope, line uint32) ([]core.Clause, scope.Scope, error) {
	out := make([]core.Clause, 0, len(clauses))
	base := s
	merged := s
	for _, c := range clauses {
		cl, s2, err := t.clause(c, base, line)
		if err != nil {
			return nil, s, err
		}
		out = append(out, cl)
		merged = merged.Merge(s2)
		base = base.Advance(s2)
	}
	return out, merged, nil
}

// clause lowers one `patterns [when guard] -> body` clause.
func (t *Translator) clause(c *syntax.Node, s scope.Scope, line uint32) (core.Clause, scope.Scope, error) {
	cline := line
	if c.Meta.Line != 0 {
		cline = c.Meta.Line
	}

	pats, _ := c.Args[0].(syntax.List)
	body := c.Args[1]

	patTerms := []syntax.Term(pats)
	var guardTerm syntax.Term
	if len(pats) == 1 {
		if w, ok := pats[0].(*syntax.Node); ok && w.IsCallNamed(syntax.TagWhen) && len(w.Args) >= 2 {
			patTerms = w.Args[:len(w.Args)-1]
			guardTerm = w.Args[len(w.Args)-1]
		}
	}

	ps, _ := s.WithContext(scope.ContextMatch).DrainGuards()
	patNodes, ps2, err := t.args(patTerms, ps, cline)
	if err != nil {
		return core.Clause{}, s, err
	}
	ps2, extra := ps2.DrainGuards()

	var guard *core.Node
	if guardTerm != nil {
		guard, ps2, err = t.guardExpr(guardTerm, ps2, cline)
		if err != nil {
			return core.Clause{}, s, err
		}
	}
	full := conjoinGuards(cline, extra, guard)

	bodyNode, bs, err := t.expr(body, ps2.WithContext(scope.ContextNormal), cline)
	if err != nil {
		return core.Clause{}, s, err
	}

	return core.Clause{Patterns: patNodes, Guard: full, Body: core.Pack(bodyNode), Line: cline}, bs, nil
}

// guardExpr lowers a clause guard. Stacked when guards or-join: any one
// of them passing selects the clause.
func (t *Translator) guardExpr(term syntax.Term, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if w, ok := term.(*syntax.Node); ok && w.IsCallNamed(syntax.TagWhen) && len(w.Args) == 2 {
		left, s1, err := t.guardExpr(w.Args[0], s, line)
		if err != nil {
			return nil, s, err
		}
		right, s2, err := t.guardExpr(w.Args[1], s1, line)
		if err != nil {
			return nil, s, err
		}
		return core.NewOp(line, "or", left, right), s2, nil
	}
	g, gs, err := t.expr(term, s.WithContext(scope.ContextGuard), line)
	if err != nil {
		return nil, s, err
	}
	return g, s.Merge(gs), nil
}

// conjoinGuards folds the accumulated membership chains and the written
// guard into one condition; all of them must hold for the clause to
// match.
func conjoinGuards(line uint32, extra []*core.Node, guard *core.Node) *core.Node {
	var full *core.Node
	for _, g := range extra {
		if full == nil {
			full = g
		} else {
			full = core.NewOp(line, "and", full, g)
		}
	}
	switch {
	case guard == nil:
		return full
	case full == nil:
		return guard
	default:
		return core.NewOp(line, "and", full, guard)
	}
}
