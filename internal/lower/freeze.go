package lower

import (
	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/syntax"
)

// Freeze embeds a constant surface term as a lowered literal tree. ok
// reports whether the whole term was a compile-time constant; nothing
// is embedded otherwise. Attribute reads inside definitions go through
// this, which is what gives them copy semantics: the value is baked
// into the tree, detached from later attribute writes.
func Freeze(line uint32, term syntax.Term) (*core.Node, bool) {
	t := &Translator{}
	return t.freeze(line, term)
}

func (t *Translator) freeze(line uint32, term syntax.Term) (*core.Node, bool) {
	switch v := term.(type) {
	case syntax.Atom:
		return core.NewAtom(line, string(v)), true
	case syntax.Int:
		return core.NewInt(line, int64(v)), true
	case syntax.Float:
		return core.NewFloat(line, float64(v)), true
	case syntax.Str:
		return core.NewStr(line, string(v)), true
	case syntax.List:
		items := v
		var tail *core.Node
		if n := len(v); n > 0 {
			if cons, ok := v[n-1].(*syntax.Node); ok && cons.IsCallNamed("|") && len(cons.Args) == 2 {
				items = make(syntax.List, n)
				copy(items, v)
				items[n-1] = cons.Args[0]
				var okT bool
				tail, okT = t.freeze(line, cons.Args[1])
				if !okT {
					return nil, false
				}
			}
		}
		elems := make([]*core.Node, 0, len(items))
		for _, item := range items {
			e, ok := t.freeze(line, item)
			if !ok {
				return nil, false
			}
			elems = append(elems, e)
		}
		return &core.Node{Kind: core.KindList, Line: line, Data: core.ListData{Elems: elems, Tail: tail}}, true
	case syntax.Pair:
		val, ok := t.freeze(line, v.Value)
		if !ok {
			return nil, false
		}
		elems := []*core.Node{core.NewAtom(line, string(v.Key)), val}
		return &core.Node{Kind: core.KindTuple, Line: line, Data: core.TupleData{Elems: elems}}, true
	case *syntax.Node:
		switch {
		case v.IsCallNamed(syntax.TagTuple):
			elems := make([]*core.Node, 0, len(v.Args))
			for _, item := range v.Args {
				e, ok := t.freeze(line, item)
				if !ok {
					return nil, false
				}
				elems = append(elems, e)
			}
			return &core.Node{Kind: core.KindTuple, Line: line, Data: core.TupleData{Elems: elems}}, true
		case v.IsCallNamed(syntax.TagAliases):
			full, err := t.resolveAlias(v, line)
			if err != nil {
				return nil, false
			}
			return core.NewAtom(line, full), true
		case (v.Tag == "-" || v.Tag == "+") && len(v.Args) == 1:
			switch x := v.Args[0].(type) {
			case syntax.Int:
				n := int64(x)
				if v.Tag == "-" {
					n = -n
				}
				return core.NewInt(line, n), true
			case syntax.Float:
				f := float64(x)
				if v.Tag == "-" {
					f = -f
				}
				return core.NewFloat(line, f), true
			}
			return nil, false
		default:
			return nil, false
		}
	default:
		return nil, false
	}
}
