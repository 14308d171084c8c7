package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// formSections extracts the keyword section list that do-block
// attachment appends as the final argument of a form.
func formSections(n *syntax.Node) (syntax.List, bool) {
	if len(n.Args) == 0 {
		return nil, false
	}
	l, ok := n.Args[len(n.Args)-1].(syntax.List)
	if !ok || len(l) == 0 {
		return nil, false
	}
	for _, item := range l {
		if _, ok := item.(syntax.Pair); !ok {
			return nil, false
		}
	}
	return l, true
}

func sectionValue(sections syntax.List, key syntax.Atom) (syntax.Term, bool) {
	for _, item := range sections {
		if p, ok := item.(syntax.Pair); ok && p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

func (t *Translator) caseForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: case is not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "case is not a valid pattern")
	}
	if len(n.Args) != 2 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "case expects a subject and a do block")
	}
	sections, ok := formSections(n)
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in case")
	}
	doBody, ok := sectionValue(sections, "do")
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in case")
	}
	for _, item := range sections {
		if p := item.(syntax.Pair); p.Key != "do" {
			return nil, s, t.fail(diag.LowInvalidArgs, line, "unexpected %s block in case", p.Key)
		}
	}

	subject, s1, err := t.expr(n.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}

	clauses, ok := clauseList(doBody)
	if !ok {
		return nil, s, t.fail(diag.LowInvalidClauseShape, line, "expected -> clauses in case")
	}
	for _, c := range clauses {
		if patternArity(c) != 1 {
			return nil, s, t.fail(diag.LowInvalidClauseShape, line, "a case clause takes a single pattern")
		}
	}
	if core.ReturnsBoolean(subject) {
		clauses = rewriteBooleanCase(clauses)
	}

	lowered, s2, err := t.matchClauses(clauses, s1, line)
	if err != nil {
		return nil, s, err
	}
	data := core.CaseData{Subject: subject, Clauses: lowered}
	return &core.Node{Kind: core.KindCase, Line: line, Data: data}, s2, nil
}

// rewriteBooleanCase replaces the truthiness clause pair produced by
// boolean coercion with literal boolean patterns. The rewrite fires
// only on the exact shape `_ in [false, nil] -> a; _ -> b` and only
// when the caller knows the subject is a boolean, where matching nil is
// impossible.
func rewriteBooleanCase(clauses []*syntax.Node) []*syntax.Node {
	if len(clauses) != 2 {
		return clauses
	}
	p1, ok1 := singlePattern(clauses[0])
	p2, ok2 := singlePattern(clauses[1])
	if !ok1 || !ok2 {
		return clauses
	}
	w2, ok := p2.(*syntax.Node)
	if !ok || !w2.IsWildcard() {
		return clauses
	}
	in, ok := p1.(*syntax.Node)
	if !ok || !in.IsCallNamed("in") || len(in.Args) != 2 {
		return clauses
	}
	wl, ok := in.Args[0].(*syntax.Node)
	if !ok || !wl.IsWildcard() {
		return clauses
	}
	set, ok := in.Args[1].(syntax.List)
	if !ok || len(set) != 2 {
		return clauses
	}
	a0, ok0 := set[0].(syntax.Atom)
	a1, okA := set[1].(syntax.Atom)
	if !ok0 || !okA || a0 != syntax.AtomFalse || a1 != syntax.AtomNil {
		return clauses
	}
	return []*syntax.Node{
		syntax.NewCall(syntax.TagClause, clauses[0].Meta, syntax.List{syntax.AtomFalse}, clauses[0].Args[1]),
		syntax.NewCall(syntax.TagClause, clauses[1].Meta, syntax.List{syntax.AtomTrue}, clauses[1].Args[1]),
	}
}

func singlePattern(c *syntax.Node) (syntax.Term, bool) {
	pats, ok := c.Args[0].(syntax.List)
	if !ok || len(pats) != 1 {
		return nil, false
	}
	return pats[0], true
}

var tryKeys = map[syntax.Atom]bool{"do": true, "rescue": true, "catch": true, "after": true, "else": true}

func (t *Translator) tryForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: try is not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "try is not a valid pattern")
	}
	if len(n.Args) != 1 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "try expects only a do block")
	}
	sections, ok := formSections(n)
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in try")
	}
	for _, item := range sections {
		if p := item.(syntax.Pair); !tryKeys[p.Key] {
			return nil, s, t.fail(diag.LowInvalidTryBranch, line, "invalid %s block in try", p.Key)
		}
	}
	doBody, ok := sectionValue(sections, "do")
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in try")
	}

	bodyNode, sd, err := t.expr(doBody, s, line)
	if err != nil {
		return nil, s, err
	}
	cur := s.Merge(sd)

	// rescue and catch merge into one exception clause list, kept in
	// source order.
	var exceptions []core.Clause
	for _, item := range sections {
		p := item.(syntax.Pair)
		if p.Key != "rescue" && p.Key != "catch" {
			continue
		}
		cl, ok := clauseList(p.Value)
		if !ok {
			return nil, s, t.fail(diag.LowInvalidTryBranch, line, "expected -> clauses in %s", p.Key)
		}
		for _, c := range cl {
			if a := patternArity(c); a != 1 && a != 2 {
				return nil, s, t.fail(diag.LowInvalidTryBranch, line, "a %s clause takes one or two patterns", p.Key)
			}
		}
		lowered, s2, err := t.matchClauses(cl, cur, line)
		if err != nil {
			return nil, s, err
		}
		exceptions = append(exceptions, lowered...)
		cur = s2
	}

	// The after block runs for effect; its bindings stay invisible.
	var after []*core.Node
	if v, ok := sectionValue(sections, "after"); ok {
		an, s2, err := t.expr(v, cur.WithNoname(true), line)
		if err != nil {
			return nil, s, err
		}
		after = core.Pack(an)
		cur = cur.Merge(s2)
	}

	var elseClauses []core.Clause
	if v, ok := sectionValue(sections, "else"); ok {
		cl, okCl := clauseList(v)
		if !okCl {
			return nil, s, t.fail(diag.LowInvalidTryBranch, line, "expected -> clauses in else")
		}
		lowered, s2, err := t.matchClauses(cl, cur, line)
		if err != nil {
			return nil, s, err
		}
		elseClauses = lowered
		cur = s2
	}

	data := core.TryData{Body: core.Pack(bodyNode), Exceptions: exceptions, Else: elseClauses, After: after}
	return &core.Node{Kind: core.KindTry, Line: line, Data: data}, cur, nil
}

func (t *Translator) receiveForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: receive is not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "receive is not a valid pattern")
	}
	if len(n.Args) != 1 {
		return nil, s, t.fail(diag.LowInvalidArgs, line, "receive expects only a do block")
	}
	sections, ok := formSections(n)
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in receive")
	}
	for _, item := range sections {
		if p := item.(syntax.Pair); p.Key != "do" && p.Key != "after" {
			return nil, s, t.fail(diag.LowInvalidReceive, line, "invalid %s block in receive", p.Key)
		}
	}
	doBody, ok := sectionValue(sections, "do")
	if !ok {
		return nil, s, t.fail(diag.LowMissingDoBlock, line, "missing do block in receive")
	}

	var msgClauses []core.Clause
	cur := s
	if !emptyBlock(doBody) {
		cl, okCl := clauseList(doBody)
		if !okCl {
			return nil, s, t.fail(diag.LowInvalidClauseShape, line, "expected -> clauses in receive")
		}
		for _, c := range cl {
			if patternArity(c) != 1 {
				return nil, s, t.fail(diag.LowInvalidClauseShape, line, "a receive clause takes a single pattern")
			}
		}
		var err error
		msgClauses, cur, err = t.matchClauses(cl, s, line)
		if err != nil {
			return nil, s, err
		}
	}

	afterBody, hasAfter := sectionValue(sections, "after")
	if !hasAfter {
		data := core.ReceiveData{Clauses: msgClauses}
		return &core.Node{Kind: core.KindReceive, Line: line, Data: data}, cur, nil
	}

	// The timeout clause rides the same clause syntax, but its head is
	// an expression, not a pattern.
	cl, okCl := clauseList(afterBody)
	if !okCl || len(cl) != 1 {
		return nil, s, t.fail(diag.LowInvalidReceive, line, "receive after expects a single timeout clause")
	}
	pats, _ := cl[0].Args[0].(syntax.List)
	if len(pats) != 1 {
		return nil, s, t.fail(diag.LowInvalidReceive, line, "receive after expects a single timeout clause")
	}
	if w, okW := pats[0].(*syntax.Node); okW && w.IsCallNamed(syntax.TagWhen) {
		return nil, s, t.fail(diag.LowInvalidReceive, line, "the timeout clause of receive cannot have a guard")
	}
	timeout, s2, err := t.expr(pats[0], cur, line)
	if err != nil {
		return nil, s, err
	}
	timeoutBody, s3, err := t.expr(cl[0].Args[1], s2, line)
	if err != nil {
		return nil, s, err
	}

	data := core.ReceiveData{Clauses: msgClauses, Timeout: timeout, TimeoutBody: core.Pack(timeoutBody)}
	return &core.Node{Kind: core.KindReceive, Line: line, Data: data}, cur.Merge(s3), nil
}

func (t *Translator) fnForm(n *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	if s.InGuard() {
		return nil, s, t.fail(diag.LowInvalidGuardExpr, line, "invalid expression in guard: fn is not allowed")
	}
	if s.InMatch() {
		return nil, s, t.fail(diag.LowInvalidPattern, line, "fn is not a valid pattern")
	}
	clauses := make([]*syntax.Node, 0, len(n.Args))
	for _, item := range n.Args {
		c, ok := item.(*syntax.Node)
		if !ok || !c.IsCallNamed(syntax.TagClause) || len(c.Args) != 2 {
			return nil, s, t.fail(diag.LowInvalidClauseShape, line, "expected -> clauses in fn")
		}
		clauses = append(clauses, c)
	}
	if len(clauses) == 0 {
		return nil, s, t.fail(diag.LowInvalidClauseShape, line, "expected -> clauses in fn")
	}
	arity := patternArity(clauses[0])
	for _, c := range clauses[1:] {
		if patternArity(c) != arity {
			return nil, s, t.fail(diag.LowInvalidClauseShape, line, "fn clauses must share one arity")
		}
	}

	lowered, s2, err := t.matchClauses(clauses, s, line)
	if err != nil {
		return nil, s, err
	}
	// fn bindings are local to the fun.
	return &core.Node{Kind: core.KindFun, Line: line, Data: core.FunData{Clauses: lowered}}, s.Advance(s2), nil
}
