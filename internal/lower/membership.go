package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/syntax"
)

// membershipNode lowers `left in right` into a strict-equality
// comparison chain built at translation time. Where the chain lands
// depends on context: inline in guards, cached behind a fresh binding
// in normal position, accumulated as an extra clause guard in pattern
// position. negate wraps the chain in a not.
func (t *Translator) membershipNode(n *syntax.Node, s scope.Scope, line uint32, negate bool) (*core.Node, scope.Scope, error) {
	left, right := n.Args[0], n.Args[1]

	wild := false
	if ln, ok := left.(*syntax.Node); ok && ln.IsWildcard() {
		wild = true
	}

	switch {
	case s.InGuard():
		// Guards reuse the left operand directly: guard expressions
		// are pure, so repeating it per disjunct is safe.
		var v *core.Node
		cur := s
		if wild {
			var name string
			cur, name = cur.BuildVar("in")
			v = core.NewVar(line, name)
		} else {
			var err error
			v, cur, err = t.expr(left, cur, line)
			if err != nil {
				return nil, s, err
			}
		}
		chain, cur, err := t.chainOver(v, right, cur, line)
		if err != nil {
			return nil, s, err
		}
		if negate {
			chain = core.NewOp(line, "not", chain)
		}
		return chain, cur, nil

	case s.InMatch():
		// Pattern position: the pattern itself stays a variable and
		// the chain joins the clause guard through the accumulator.
		var v, pat *core.Node
		cur := s
		if wild {
			var name string
			cur, name = cur.BuildVar("in")
			v = core.NewVar(line, name)
			pat = v
		} else {
			leftPat, cl, err := t.expr(left, cur, line)
			if err != nil {
				return nil, s, err
			}
			cur = cl
			if leftPat.Kind == core.KindVar {
				v = leftPat
				pat = leftPat
			} else {
				var name string
				cur, name = cur.BuildVar("in")
				v = core.NewVar(line, name)
				pat = core.NewMatch(line, v, leftPat)
			}
		}
		chain, cg, err := t.chainOver(v, right, cur.WithContext(scope.ContextGuard), line)
		if err != nil {
			return nil, s, err
		}
		if negate {
			chain = core.NewOp(line, "not", chain)
		}
		return pat, cur.Merge(cg).PushGuard(chain), nil

	default:
		// Normal position: cache the left value behind a fresh
		// binding so it evaluates exactly once.
		if wild {
			cur, name := s.BuildVar("in")
			v := core.NewVar(line, name)
			chain, cur2, err := t.chainOver(v, right, cur, line)
			if err != nil {
				return nil, s, err
			}
			if negate {
				chain = core.NewOp(line, "not", chain)
			}
			return chain, cur2, nil
		}
		leftNode, cur, err := t.expr(left, s, line)
		if err != nil {
			return nil, s, err
		}
		cur, name := cur.BuildVar("in")
		v := core.NewVar(line, name)
		chain, cur2, err := t.chainOver(v, right, cur, line)
		if err != nil {
			return nil, s, err
		}
		if negate {
			chain = core.NewOp(line, "not", chain)
		}
		bind := core.NewMatch(line, v, leftNode)
		return core.NewBlock(line, bind, chain), cur2, nil
	}
}

// chainOver builds the comparison chain for the right operand of a
// membership test over v. Lists compare element by element, strings
// compare against each character code, ranges compare against the
// bounds.
func (t *Translator) chainOver(v *core.Node, right syntax.Term, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	switch r := right.(type) {
	case syntax.List:
		elems, s2, err := t.args(r, s, line)
		if err != nil {
			return nil, s, err
		}
		return orChain(line, v, elems), s2, nil
	case syntax.Str:
		var elems []*core.Node
		for _, c := range string(r) {
			elems = append(elems, core.NewInt(line, int64(c)))
		}
		return orChain(line, v, elems), s, nil
	case *syntax.Node:
		if r.IsCallNamed("..") && len(r.Args) == 2 {
			return t.rangeChain(v, r, s, line)
		}
	}
	return nil, s, t.fail(diag.LowInvalidMembership, line,
		"invalid right-hand side for membership test: expected a literal list, string or range")
}

// orChain is the left-to-right disjunction of strict equalities against
// v. An empty sequence is the literal false: nothing is a member of it.
func orChain(line uint32, v *core.Node, elems []*core.Node) *core.Node {
	if len(elems) == 0 {
		return core.NewBool(line, false)
	}
	chain := core.NewOp(line, "===", v, elems[len(elems)-1])
	for i := len(elems) - 2; i >= 0; i-- {
		chain = core.NewOp(line, "or", core.NewOp(line, "===", v, elems[i]), chain)
	}
	return chain
}

// rangeChain lowers a range membership test. When both bounds are
// constants the bound order is decided here and the test is a single
// conjunction; otherwise both orders are emitted behind a runtime
// bound comparison.
func (t *Translator) rangeChain(v *core.Node, rng *syntax.Node, s scope.Scope, line uint32) (*core.Node, scope.Scope, error) {
	lo, s1, err := t.expr(rng.Args[0], s, line)
	if err != nil {
		return nil, s, err
	}
	hi, s2, err := t.expr(rng.Args[1], s1, line)
	if err != nil {
		return nil, s, err
	}

	lv, lok := constOrder(lo)
	hv, hok := constOrder(hi)
	switch {
	case lok && hok && lv.lessEq(hv):
		return core.NewOp(line, "and",
			core.NewOp(line, ">=", v, lo),
			core.NewOp(line, "<=", v, hi)), s2, nil
	case lok && hok:
		t.warn(diag.LowDeprecatedRange, line,
			"descending ranges in 'in' are deprecated; write the bounds in ascending order")
		return core.NewOp(line, "and",
			core.NewOp(line, "<=", v, lo),
			core.NewOp(line, ">=", v, hi)), s2, nil
	default:
		asc := core.NewOp(line, "and",
			core.NewOp(line, "<=", lo, hi),
			core.NewOp(line, "and",
				core.NewOp(line, ">=", v, lo),
				core.NewOp(line, "<=", v, hi)))
		desc := core.NewOp(line, "and",
			core.NewOp(line, "<", hi, lo),
			core.NewOp(line, "and",
				core.NewOp(line, "<=", v, lo),
				core.NewOp(line, ">=", v, hi)))
		return core.NewOp(line, "or", asc, desc), s2, nil
	}
}

// constValue extracts a literal whose term order is decided at
// translation time: numbers and atoms. Numbers sort before atoms.
type constValue struct {
	isNum bool
	num   float64
	atom  string
}

func (a constValue) lessEq(b constValue) bool {
	switch {
	case a.isNum && b.isNum:
		return a.num <= b.num
	case a.isNum:
		return true
	case b.isNum:
		return false
	default:
		return a.atom <= b.atom
	}
}

func constOrder(n *core.Node) (constValue, bool) {
	d, ok := n.Data.(core.LiteralData)
	if !ok {
		return constValue{}, false
	}
	switch d.Kind {
	case core.LitInt:
		return constValue{isNum: true, num: float64(d.Int)}, true
	case core.LitFloat:
		return constValue{isNum: true, num: d.Float}, true
	case core.LitAtom:
		return constValue{atom: d.Atom}, true
	default:
		return constValue{}, false
	}
}
